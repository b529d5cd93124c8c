package normalize

// ReconcileProject enforces the legacy/plural pairing on project records:
// images/image, categories/category, githubLinks/githubUrl. A supplied plural
// field is authoritative and the singular is derived from its first element;
// a supplied singular synthesizes a one-element plural; on update, untouched
// pairs fall back to the existing record's values.
//
// The update path intentionally differs from the create path in how it treats
// supplied singular fields: updates honor field presence (an explicit empty
// value clears the pair), creates honor truthiness. That mirrors how the data
// has always been written, so existing documents keep round-tripping
// unchanged.
func ReconcileProject(existing, incoming, merged map[string]any) {
	creating := existing == nil

	// images / image
	images, ok := asList(incoming["images"])
	if !ok {
		if img, present := stringField(incoming, "image"); present && img != "" {
			images = []any{img}
		} else if !creating {
			images = fallbackList(existing, "images", "image", wrapPlainString)
		} else {
			images = []any{}
		}
	}
	merged["images"] = images
	merged["image"] = firstString(images)
	if creating && merged["image"] == "" {
		if img, _ := stringField(incoming, "image"); img != "" {
			merged["image"] = img
		}
	}

	// categories / category
	categories, ok := asList(incoming["categories"])
	if !ok {
		cat, present := stringField(incoming, "category")
		switch {
		case creating && cat != "":
			categories = []any{cat}
		case !creating && present:
			categories = []any{cat}
		case !creating:
			categories = fallbackList(existing, "categories", "category", wrapPlainString)
		default:
			categories = []any{}
		}
	}
	merged["categories"] = categories
	merged["category"] = firstString(categories)
	if creating && merged["category"] == "" {
		if cat, _ := stringField(incoming, "category"); cat != "" {
			merged["category"] = cat
		}
	}

	// githubLinks / githubUrl
	links, ok := asList(incoming["githubLinks"])
	if !ok {
		u, present := stringField(incoming, "githubUrl")
		switch {
		case creating && u != "":
			links = []any{wrapGithubURL(u)}
		case !creating && present:
			links = []any{wrapGithubURL(u)}
		case !creating:
			links = fallbackList(existing, "githubLinks", "githubUrl", wrapGithubURL)
		default:
			links = []any{}
		}
	}
	merged["githubLinks"] = links
	merged["githubUrl"] = firstLinkURL(links)
	if creating && merged["githubUrl"] == "" {
		if u, _ := stringField(incoming, "githubUrl"); u != "" {
			merged["githubUrl"] = u
		}
	}
}

// fallbackList resolves a plural field from an existing record: the stored
// plural when present, else a wrapper around the stored singular, else empty.
func fallbackList(existing map[string]any, pluralKey, singularKey string, wrap func(string) any) []any {
	if list, ok := asList(existing[pluralKey]); ok {
		return list
	}
	if v, _ := stringField(existing, singularKey); v != "" {
		return []any{wrap(v)}
	}
	return []any{}
}

func wrapPlainString(s string) any { return s }

func wrapGithubURL(u string) any {
	return map[string]any{"label": "GitHub", "url": u, "isPrivate": false}
}

// asList accepts a non-nil JSON array. A JSON null (how a nil Go slice
// round-trips) counts as absent, matching the nullish fallback the data was
// written with.
func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	if !ok || list == nil {
		return nil, false
	}
	return list, true
}

// stringField reports the field's string value and whether the key was
// present at all.
func stringField(m map[string]any, key string) (string, bool) {
	v, present := m[key]
	if !present {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

func firstString(list []any) string {
	if len(list) == 0 {
		return ""
	}
	s, _ := list[0].(string)
	return s
}

func firstLinkURL(list []any) string {
	if len(list) == 0 {
		return ""
	}
	link, ok := list[0].(map[string]any)
	if !ok {
		return ""
	}
	u, _ := link["url"].(string)
	return u
}
