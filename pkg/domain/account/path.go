package account

import "strings"

// Separator joins account names into full paths. Account names must never
// contain it.
const Separator = "/"

// SplitPath breaks a full path into its segments. The empty path yields a
// single empty segment, so JoinPath(SplitPath(p)) == p holds for every p.
func SplitPath(path string) []string {
	return strings.Split(path, Separator)
}

// JoinPath assembles path segments into a full path. It is the inverse of
// SplitPath.
func JoinPath(segments []string) string {
	return strings.Join(segments, Separator)
}

// ParentPath returns everything up to the last separator, the full path of
// the parent account. A single-segment path has no parent and yields "".
func ParentPath(path string) string {
	idx := strings.LastIndex(path, Separator)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// LeafName returns the last segment of a path, the account's own name.
func LeafName(path string) string {
	idx := strings.LastIndex(path, Separator)
	if idx < 0 {
		return path
	}
	return path[idx+len(Separator):]
}

// ChildPath builds the full path of a child named name under parentPath. A
// child of the empty parent path is a root account, so its path is just its
// name.
func ChildPath(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + Separator + name
}

// IsDescendantPath reports whether path lies strictly below ancestor, that
// is, whether it extends ancestor by at least one segment.
func IsDescendantPath(path, ancestor string) bool {
	return strings.HasPrefix(path, ancestor+Separator)
}

// PathDepth returns the number of segments in a path. Root accounts have
// depth 1.
func PathDepth(path string) int {
	return strings.Count(path, Separator) + 1
}

// RebasePath rewrites a path that lies at or below oldPrefix so that it lies
// at or below newPrefix instead. The substitution is literal: only the
// leading oldPrefix is replaced.
func RebasePath(path, oldPrefix, newPrefix string) string {
	return newPrefix + path[len(oldPrefix):]
}
