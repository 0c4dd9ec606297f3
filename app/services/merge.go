package services

// Patch merge rules. Most fields keep the current value unless the patch
// carries a non-empty one; clearable fields take whatever was sent.

func keep[T comparable](p *T, cur T) T {
	var zero T
	if p != nil && *p != zero {
		return *p
	}
	return cur
}

func replace[T any](p *T, cur T) T {
	if p != nil {
		return *p
	}
	return cur
}

func keepID(p *int64, cur *int64) *int64 {
	if p != nil && *p != 0 {
		id := *p
		return &id
	}
	return cur
}

func keepTags(p []string, cur []string) []string {
	if p != nil {
		return p
	}
	return cur
}

func orDefault[T comparable](p *T, def T) T {
	var zero T
	if p != nil && *p != zero {
		return *p
	}
	return def
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func optionalID(p *int64) *int64 {
	if p == nil || *p == 0 {
		return nil
	}
	id := *p
	return &id
}
