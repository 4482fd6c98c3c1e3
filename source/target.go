package source

// DownloadTarget is a fully resolved asset ready for the downloader.
type DownloadTarget struct {
	URL string
	// Directory and base name, without extension.
	Destination string
	// Extension including the leading dot.
	Extension string
}

// Path returns the final file path of the target.
func (t DownloadTarget) Path() string {
	return t.Destination + t.Extension
}

func (t DownloadTarget) String() string {
	return t.Path()
}
