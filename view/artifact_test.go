package view

import "testing"

func TestArtifactKindForFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want ArtifactKind
	}{
		{name: "index", path: "index.html", want: ArtifactHTML},
		{name: "styles", path: "styles.css", want: ArtifactCSS},
		{name: "scripts", path: "scripts.js", want: ArtifactJS},
		{name: "component", path: "components/header.html", want: ArtifactComponent},
		{name: "nested component", path: "components/nav/menu.jsx", want: ArtifactComponent},
		{name: "asset", path: "assets/logo.svg", want: ArtifactOther},
		{name: "well-known name in subdirectory is not well-known", path: "assets/index.html", want: ArtifactOther},
		{name: "unknown html file", path: "about.html", want: ArtifactOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtifactKindForFile(tt.path); got != tt.want {
				t.Errorf("ArtifactKindForFile(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestComponentFileName(t *testing.T) {
	tests := []struct {
		name      string
		framework Framework
		want      string
	}{
		{name: "html", framework: FrameworkHTML, want: "header.html"},
		{name: "react", framework: FrameworkReact, want: "header.jsx"},
		{name: "vue", framework: FrameworkVue, want: "header.vue"},
		{name: "unknown falls back to html", framework: "svelte", want: "header.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComponentFileName("header", tt.framework); got != tt.want {
				t.Errorf("ComponentFileName() = %s, want %s", got, tt.want)
			}
		})
	}
}
