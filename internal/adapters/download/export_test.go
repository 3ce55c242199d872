package download

import "io"

// SetOpenFile replaces the function creating the partial download file.
func (f *Fetcher) SetOpenFile(open func(name string) (io.WriteCloser, error)) {
	f.openFile = open
}
