package pinterest

import "pinsync/lib/textutil"

const maxTags = 5

// tagSources are the platform-native signals tags may be pulled from, in
// priority order. Tags are never inferred from pin content; a candidate
// carrying none of these sources legitimately gets zero tags.
var tagSources = []func(node map[string]any) []string{
	hashtagTags,
	visualAnnotationTags,
	pinnerTags,
	boardSectionTags,
}

func nativeTags(node map[string]any) []string {
	tags := []string{}
	seen := map[string]bool{}

	for _, source := range tagSources {
		for _, raw := range source(node) {
			tag := textutil.NormalizeTag(raw)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
			if len(tags) == maxTags {
				return tags
			}
		}
	}
	return tags
}

// hashtag entries appear both as {"tag": "..."} objects and plain strings
func hashtagTags(node map[string]any) []string {
	entries, _ := node["hashtags"].([]any)
	var tags []string
	for _, entry := range entries {
		switch v := entry.(type) {
		case map[string]any:
			if tag, ok := v["tag"].(string); ok {
				tags = append(tags, tag)
			}
		case string:
			tags = append(tags, v)
		}
	}
	return tags
}

func visualAnnotationTags(node map[string]any) []string {
	pinJoin, _ := node["pin_join"].(map[string]any)
	annotations, _ := pinJoin["visual_annotation"].([]any)
	var tags []string
	for _, annotation := range annotations {
		if tag, ok := annotation.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func pinnerTags(node map[string]any) []string {
	entries, _ := node["pinner_tags"].([]any)
	var tags []string
	for _, entry := range entries {
		if tag, ok := entry.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func boardSectionTags(node map[string]any) []string {
	section, _ := node["board_section"].(map[string]any)
	name, _ := section["name"].(string)
	if name == "" {
		return nil
	}
	return []string{name}
}
