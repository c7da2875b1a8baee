/*
Package content infers Content-Type values for served files.

Extension mapping is authoritative when it knows the extension, which
keeps serving cheap for the common html/css/js/image cases. Files with
unknown or missing extensions are sniffed by magic bytes. Text types
without a declared charset get one detected from a bounded sample of
the file, since scraped pages often predate utf-8.
*/
package content
