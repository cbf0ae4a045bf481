package rag

// DefaultNamespace maps to the bare base collection with no suffix.
const DefaultNamespace = "default"

// CollectionName resolves the physical collection for a namespace. The
// default namespace shares the base name; every other namespace gets its own
// suffixed collection.
func CollectionName(base, namespace string) string {
	if namespace == "" || namespace == DefaultNamespace {
		return base
	}
	return base + "_" + namespace
}
