// Package download streams a portal download response to local storage.
//
// The streamer copies the response body to a file in fixed-size chunks while
// advancing a progress indicator. There is no resume: any interruption or
// I/O failure removes the partial file and the whole download starts over.
// A directory-scoped lock file keeps concurrent invocations from streaming
// into the same destination.
package download
