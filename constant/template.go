package constant

// StoryTemplate renders the detail view of a single story in the CLI.
const StoryTemplate = `{{ title .Title }}
{{ faint .Slug }}

{{ wrap .Description }}

{{ blue "Reading time:" }} {{ .ReadingTime }} min
{{ blue "Age group:" }}    {{ .AgeGroup }}
{{- if .Tags }}
{{ blue "Tags:" }}         {{ join (tagNames .Tags) ", " }}
{{- end }}
{{- with .Audio }}
{{ blue "Audio:" }}        {{ clock .Duration }}{{ if .Narrator }} {{ faint (concat "narrated by " .Narrator) }}{{ end }}
{{- else }}
{{ blue "Audio:" }}        {{ faint "none" }}
{{- end }}
{{- if .Favorite }}
{{ pink "♥ favorite" }}
{{- end }}
{{- if .Downloaded }}
{{ green "available offline" }}
{{- end }}
`
