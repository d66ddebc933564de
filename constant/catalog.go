package constant

// Languages the catalog publishes stories in.
const (
	English = "en"
	Polish  = "pl"
	Russian = "ru"
)

// Age groups stories are written for.
const (
	AgeToddler  = "3-5"
	AgeChildren = "6-8"
	AgePreteen  = "9-12"
)

// Catalog backends.
const (
	CatalogMock   = "mock"
	CatalogRemote = "remote"
)

// Audio playback backends.
const (
	BackendNative = "native"
	BackendMPV    = "mpv"
)
