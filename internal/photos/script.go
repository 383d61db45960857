package photos

import (
	"fmt"
	"strings"
)

// escape prepares a user-supplied value for embedding inside a double-quoted
// AppleScript string literal by escaping quote characters. Backslashes,
// newlines, and other AppleScript metacharacters deliberately pass through
// unchanged: hardening them would change observable behavior for edge-case
// inputs, so the known gap is documented here instead of silently closed.
func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// scripts renders AppleScript command bodies for one host application.
type scripts struct {
	app string
}

func (s scripts) tell(body string) string {
	return fmt.Sprintf("tell application \"%s\"\n%s\nend tell", s.app, body)
}

func (s scripts) listAlbums() string {
	return s.tell(`	set output to ""
	repeat with anAlbum in albums
		set output to output & (name of anAlbum) & "\n"
	end repeat
	return output`)
}

func (s scripts) albumPhotos(album string, limit int) string {
	return s.tell(fmt.Sprintf(`	set theAlbum to album "%s"
	set output to ""
	set n to 0
	repeat with anItem in (media items of theAlbum)
		if n is greater than or equal to %d then exit repeat
		set output to output & (filename of anItem) & " (" & (id of anItem) & ")\n"
		set n to n + 1
	end repeat
	return output`, escape(album), limit))
}

func (s scripts) createAlbum(name string) string {
	quoted := escape(name)
	return s.tell(fmt.Sprintf(`	make new album named "%s"
	return "Created album: %s"`, quoted, quoted))
}

func (s scripts) deleteAlbum(name string) string {
	quoted := escape(name)
	return s.tell(fmt.Sprintf(`	delete album "%s"
	return "Deleted album: %s"`, quoted, quoted))
}

func (s scripts) listSmartAlbums() string {
	return s.tell(`	set output to ""
	repeat with anAlbum in smart albums
		set output to output & (name of anAlbum) & "\n"
	end repeat
	return output`)
}

func (s scripts) recent(limit int) string {
	return s.tell(fmt.Sprintf(`	set allItems to media items
	set total to count of allItems
	set startIndex to total - %d + 1
	if startIndex is less than 1 then set startIndex to 1
	set output to ""
	repeat with i from total to startIndex by -1
		set anItem to item i of allItems
		set output to output & (filename of anItem) & " (" & (id of anItem) & ")\n"
	end repeat
	return output`, limit))
}

func (s scripts) favorites(limit int) string {
	return s.tell(fmt.Sprintf(`	set output to ""
	set n to 0
	repeat with anItem in (media items whose favorite is true)
		if n is greater than or equal to %d then exit repeat
		set output to output & (filename of anItem) & " (" & (id of anItem) & ")\n"
		set n to n + 1
	end repeat
	return output`, limit))
}

func (s scripts) photoInfo(photoID string) string {
	return s.tell(fmt.Sprintf(`	set anItem to media item id "%s"
	set output to "ID: " & (id of anItem) & "\n"
	set output to output & "Filename: " & (filename of anItem) & "\n"
	set output to output & "Date: " & ((date of anItem) as string) & "\n"
	set output to output & "Favorite: " & ((favorite of anItem) as string) & "\n"
	set output to output & "Size: " & (width of anItem) & "x" & (height of anItem) & "\n"
	if description of anItem is not missing value then set output to output & "Description: " & (description of anItem) & "\n"
	if (count of keywords of anItem) is greater than 0 then set output to output & "Keywords: " & ((keywords of anItem) as string) & "\n"
	if location of anItem is not missing value then set output to output & "Location: " & ((location of anItem) as string) & "\n"
	return output`, escape(photoID)))
}

func (s scripts) search(query string, limit int) string {
	quoted := escape(query)
	return s.tell(fmt.Sprintf(`	set output to ""
	set n to 0
	repeat with anItem in (media items whose filename contains "%s" or description contains "%s")
		if n is greater than or equal to %d then exit repeat
		set output to output & (filename of anItem) & " (" & (id of anItem) & ")\n"
		set n to n + 1
	end repeat
	return output`, quoted, quoted, limit))
}

func (s scripts) searchByDate(startDate, endDate string, limit int) string {
	return s.tell(fmt.Sprintf(`	set startDate to date "%s"
	set endDate to date "%s"
	set output to ""
	set n to 0
	repeat with anItem in (media items whose date is greater than or equal to startDate and date is less than or equal to endDate)
		if n is greater than or equal to %d then exit repeat
		set output to output & (filename of anItem) & " (" & (id of anItem) & ")\n"
		set n to n + 1
	end repeat
	return output`, escape(startDate), escape(endDate), limit))
}

// export exports up to limit items from the named album, or from the host
// app's current selection when album is empty.
func (s scripts) export(album, dest string, limit int) string {
	source := "selection"
	if album != "" {
		source = fmt.Sprintf(`media items of album "%s"`, escape(album))
	}
	quotedDest := escape(dest)
	return s.tell(fmt.Sprintf(`	set theItems to %s
	set exportList to {}
	set n to 0
	repeat with anItem in theItems
		if n is greater than or equal to %d then exit repeat
		set end of exportList to (contents of anItem)
		set n to n + 1
	end repeat
	export exportList to POSIX file "%s"
	return "Exported " & (count of exportList) & " items to %s"`, source, limit, quotedDest, quotedDest))
}

func (s scripts) exportPhoto(photoID, dest string) string {
	quotedDest := escape(dest)
	return s.tell(fmt.Sprintf(`	set anItem to media item id "%s"
	export {anItem} to POSIX file "%s"
	return "Exported 1 item to %s"`, escape(photoID), quotedDest, quotedDest))
}

func (s scripts) toggleFavorite(photoID string) string {
	return s.tell(fmt.Sprintf(`	set anItem to media item id "%s"
	set favorite of anItem to not (favorite of anItem)
	return "Favorite is now " & ((favorite of anItem) as string)`, escape(photoID)))
}

func (s scripts) stats() string {
	return s.tell(`	set itemCount to count of media items
	set albumCount to count of albums
	set favoriteCount to count of (media items whose favorite is true)
	return "Total items: " & itemCount & "\nAlbums: " & albumCount & "\nFavorites: " & favoriteCount`)
}

func (s scripts) open() string {
	return s.tell(fmt.Sprintf(`	activate
	return "Opened %s"`, s.app))
}

func (s scripts) openAlbum(album string) string {
	quoted := escape(album)
	return s.tell(fmt.Sprintf(`	activate
	spotlight album "%s"
	return "Opened album: %s"`, quoted, quoted))
}

func (s scripts) importPath(path, album string) string {
	target := ""
	if album != "" {
		target = fmt.Sprintf(` into album "%s"`, escape(album))
	}
	return s.tell(fmt.Sprintf(`	set importList to import (POSIX file "%s")%s
	return "Imported " & (count of importList) & " items"`, escape(path), target))
}
