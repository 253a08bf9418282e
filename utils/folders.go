package utils

import "path"

// DataFolder is where logs and saved palettes go.
var DataFolder string

func PathData(p ...string) string {
	pj := path.Join(p...)
	if path.IsAbs(pj) {
		return pj
	}
	return path.Join(DataFolder, pj)
}
