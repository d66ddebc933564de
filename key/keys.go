// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Audio Playback - these keys configure the player defaults applied when a story starts.
const (
	AudioVolume    = "audio.volume"
	AudioRate      = "audio.rate"
	AudioAutoPlay  = "audio.auto_play"
	AudioFadeIn    = "audio.fade_in"
	AudioFadeInMs  = "audio.fade_in_ms"
	AudioFadeOutMs = "audio.fade_out_ms"
	AudioBackend   = "audio.backend"
)

// Sleep Timer - these keys configure the countdown that pauses narration.
const (
	SleepDefaultMinutes = "sleep.default_minutes"
	SleepFadeOut        = "sleep.fade_out"
)

// Story Catalog - these keys select and tune the backend stories are fetched from.
const (
	CatalogSource         = "catalog.source"
	CatalogEndpoint       = "catalog.endpoint"
	CatalogLanguage       = "catalog.language"
	CatalogTimeoutSeconds = "catalog.timeout_seconds"
	CatalogRetryAttempts  = "catalog.retry_attempts"
	CatalogPageSize       = "catalog.page_size"
)

// History Tracking - these keys configure the persistence of reading and listening state.
const (
	HistorySaveOnListen = "history.save_on_listen"
	HistoryLimit        = "history.limit"
)

// Offline Storage - these keys bound the disk space used by downloaded stories.
const (
	OfflineMaxAudioMB   = "offline.max_audio_mb"
	OfflineMaxStorageMB = "offline.max_storage_mb"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Reader - these keys control how story text is laid out in the terminal.
const (
	ReaderWidth = "reader.width"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
