// Package filelist provides the ordered, read-only list of files a Visitor walks.
// Each entry carries a caller-assigned index which is reported back in every
// BatchInfo, so that progress can be tracked outside of the traversal.
package filelist
