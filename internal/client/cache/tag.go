package cache

// Tag identifies what a cached entry depends on. An empty ID is the
// collection-level tag of the resource.
type Tag struct {
	Resource string
	ID       string
}

func CollectionTag(resource string) Tag {
	return Tag{Resource: resource}
}

func ItemTag(resource, id string) Tag {
	return Tag{Resource: resource, ID: id}
}

// IsCollection reports whether t is a collection-level tag.
func (t Tag) IsCollection() bool {
	return t.ID == ""
}

func (t Tag) String() string {
	if t.IsCollection() {
		return t.Resource
	}
	return t.Resource + ":" + t.ID
}
