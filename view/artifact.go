package view

import (
	"path"
	"strings"
)

type ArtifactKind string

const (
	ArtifactHTML      ArtifactKind = "html"
	ArtifactCSS       ArtifactKind = "css"
	ArtifactJS        ArtifactKind = "js"
	ArtifactComponent ArtifactKind = "component"
	ArtifactOther     ArtifactKind = "other"
)

const (
	IndexHTMLFile = "index.html"
	StylesCSSFile = "styles.css"
	ScriptsJSFile = "scripts.js"

	ComponentsDir = "components"
	AssetsDir     = "assets"
)

// wellKnownArtifacts is the explicit filename-to-kind table. Kind resolution
// happens here and nowhere else, callers must not re-derive it from suffixes.
var wellKnownArtifacts = map[string]ArtifactKind{
	IndexHTMLFile: ArtifactHTML,
	StylesCSSFile: ArtifactCSS,
	ScriptsJSFile: ArtifactJS,
}

// ArtifactKindForFile accepts a path relative to the session output root.
func ArtifactKindForFile(name string) ArtifactKind {
	if kind, ok := wellKnownArtifacts[path.Base(name)]; ok && name == path.Base(name) {
		return kind
	}
	if strings.HasPrefix(name, ComponentsDir+"/") {
		return ArtifactComponent
	}
	return ArtifactOther
}

func IsWellKnownArtifact(name string) bool {
	_, ok := wellKnownArtifacts[name]
	return ok
}

type Framework string

const (
	FrameworkHTML  Framework = "html"
	FrameworkReact Framework = "react"
	FrameworkVue   Framework = "vue"
)

var componentExtensions = map[Framework]string{
	FrameworkHTML:  "html",
	FrameworkReact: "jsx",
	FrameworkVue:   "vue",
}

func ComponentFileName(name string, framework Framework) string {
	ext, ok := componentExtensions[framework]
	if !ok {
		ext = componentExtensions[FrameworkHTML]
	}
	return name + "." + ext
}

type CodeArtifact struct {
	FileName string       `json:"fileName"`
	Kind     ArtifactKind `json:"kind"`
	Content  string       `json:"content"`
}
