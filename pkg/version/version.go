package version

import "fmt"

// Set at build time via -ldflags.
var (
	Tag    = "v0.0.0-dev"
	Commit = ""
)

type Info struct {
	Name   string `json:"name"`
	Tag    string `json:"tag"`
	Commit string `json:"commit,omitempty"`
}

func Get() Info {
	return Info{
		Name:   "resolver-dns",
		Tag:    Tag,
		Commit: Commit,
	}
}

func (i Info) String() string {
	if i.Commit == "" {
		return i.Tag
	}
	return fmt.Sprintf("%s (%s)", i.Tag, i.Commit)
}
