package photos

// Param describes one tool parameter for validation and schema generation.
type Param struct {
	Name        string
	Type        string // "string", "number", or "boolean"
	Description string
	Required    bool
}

// Descriptor is one row of the operation registry: the tool's wire contract
// plus the function that renders its AppleScript command.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param

	// Label is the static prefix prepended verbatim to successful output.
	Label string

	// Build renders the AppleScript for a validated argument bag. Defaults
	// for omitted optional arguments are applied here.
	Build func(args Args) string

	// ExportDest resolves the destination directory a call writes to, or ""
	// for operations without a filesystem side channel. The dispatcher
	// creates the directory before the command runs.
	ExportDest func(args Args) string
}

// Default limits per operation. These are part of the public tool contract.
const (
	defaultAlbumPhotosLimit  = 50
	defaultRecentLimit       = 20
	defaultFavoritesLimit    = 50
	defaultSearchLimit       = 20
	defaultSearchByDateLimit = 50
	defaultExportLimit       = 10
)

// Descriptors builds the full operation registry for one host application.
// exportBase is the directory used when an export call omits its destination.
func Descriptors(app, exportBase string) []Descriptor {
	sc := scripts{app: app}
	dest := func(args Args) string {
		if args.Has("destination") {
			return args.String("destination")
		}
		return exportBase
	}

	return []Descriptor{
		{
			Name:        "photos_list_albums",
			Description: "List all albums in the photo library",
			Label:       "Albums:\n",
			Build:       func(Args) string { return sc.listAlbums() },
		},
		{
			Name:        "photos_get_album_photos",
			Description: "List photos in a named album",
			Params: []Param{
				{Name: "album", Type: "string", Description: "Album name", Required: true},
				{Name: "limit", Type: "number", Description: "Maximum number of photos to return (default 50)"},
			},
			Build: func(args Args) string {
				return sc.albumPhotos(args.String("album"), args.Int("limit", defaultAlbumPhotosLimit))
			},
		},
		{
			Name:        "photos_create_album",
			Description: "Create a new album",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Name for the new album", Required: true},
			},
			Build: func(args Args) string { return sc.createAlbum(args.String("name")) },
		},
		{
			Name:        "photos_delete_album",
			Description: "Delete an album",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Name of the album to delete", Required: true},
			},
			Build: func(args Args) string { return sc.deleteAlbum(args.String("name")) },
		},
		{
			Name:        "photos_list_smart_albums",
			Description: "List smart albums in the photo library",
			Label:       "Smart Albums:\n",
			Build:       func(Args) string { return sc.listSmartAlbums() },
		},
		{
			Name:        "photos_get_recent",
			Description: "List the most recently added photos",
			Params: []Param{
				{Name: "limit", Type: "number", Description: "Maximum number of photos to return (default 20)"},
			},
			Label: "Recent Photos:\n",
			Build: func(args Args) string { return sc.recent(args.Int("limit", defaultRecentLimit)) },
		},
		{
			Name:        "photos_get_favorites",
			Description: "List favorited photos",
			Params: []Param{
				{Name: "limit", Type: "number", Description: "Maximum number of photos to return (default 50)"},
			},
			Label: "Favorite Photos:\n",
			Build: func(args Args) string { return sc.favorites(args.Int("limit", defaultFavoritesLimit)) },
		},
		{
			Name:        "photos_get_photo_info",
			Description: "Get detailed information about a photo by its identifier",
			Params: []Param{
				{Name: "photo_id", Type: "string", Description: "Photo identifier", Required: true},
			},
			Label: "Photo Info:\n",
			Build: func(args Args) string { return sc.photoInfo(args.String("photo_id")) },
		},
		{
			Name:        "photos_search",
			Description: "Search photos by filename or description",
			Params: []Param{
				{Name: "query", Type: "string", Description: "Text to search for", Required: true},
				{Name: "limit", Type: "number", Description: "Maximum number of results (default 20)"},
			},
			Label: "Search Results:\n",
			Build: func(args Args) string {
				return sc.search(args.String("query"), args.Int("limit", defaultSearchLimit))
			},
		},
		{
			Name:        "photos_search_by_date",
			Description: "Search photos taken within an inclusive date range",
			Params: []Param{
				{Name: "start_date", Type: "string", Description: "Start of the date range", Required: true},
				{Name: "end_date", Type: "string", Description: "End of the date range", Required: true},
				{Name: "limit", Type: "number", Description: "Maximum number of results (default 50)"},
			},
			Label: "Search Results:\n",
			Build: func(args Args) string {
				return sc.searchByDate(args.String("start_date"), args.String("end_date"), args.Int("limit", defaultSearchByDateLimit))
			},
		},
		{
			Name:        "photos_export",
			Description: "Export photos from an album, or from the current selection when no album is given",
			Params: []Param{
				{Name: "album", Type: "string", Description: "Album to export from (defaults to the current selection)"},
				{Name: "destination", Type: "string", Description: "Destination directory (defaults to the configured export directory)"},
				{Name: "limit", Type: "number", Description: "Maximum number of photos to export (default 10)"},
			},
			Build: func(args Args) string {
				return sc.export(args.String("album"), dest(args), args.Int("limit", defaultExportLimit))
			},
			ExportDest: dest,
		},
		{
			Name:        "photos_export_photo",
			Description: "Export a single photo by its identifier",
			Params: []Param{
				{Name: "photo_id", Type: "string", Description: "Photo identifier", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory (defaults to the configured export directory)"},
			},
			Build: func(args Args) string {
				return sc.exportPhoto(args.String("photo_id"), dest(args))
			},
			ExportDest: dest,
		},
		{
			Name:        "photos_toggle_favorite",
			Description: "Toggle the favorite flag on a photo",
			Params: []Param{
				{Name: "photo_id", Type: "string", Description: "Photo identifier", Required: true},
			},
			Build: func(args Args) string { return sc.toggleFavorite(args.String("photo_id")) },
		},
		{
			Name:        "photos_get_stats",
			Description: "Get library statistics: total items, albums, and favorites",
			Label:       "Library Statistics:\n",
			Build:       func(Args) string { return sc.stats() },
		},
		{
			Name:        "photos_open",
			Description: "Open the photo library application",
			Build:       func(Args) string { return sc.open() },
		},
		{
			Name:        "photos_open_album",
			Description: "Open the photo library application and show a named album",
			Params: []Param{
				{Name: "album", Type: "string", Description: "Album name", Required: true},
			},
			Build: func(args Args) string { return sc.openAlbum(args.String("album")) },
		},
		{
			Name:        "photos_import",
			Description: "Import a file or directory of photos, optionally into a named album",
			Params: []Param{
				{Name: "path", Type: "string", Description: "File or directory to import", Required: true},
				{Name: "album", Type: "string", Description: "Album to import into"},
			},
			Build: func(args Args) string {
				return sc.importPath(args.String("path"), args.String("album"))
			},
		},
	}
}
