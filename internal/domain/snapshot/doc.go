/*
Package snapshot inspects the on-disk layout of a scraped site snapshot.

A snapshot root holds the site's entry page at index.html, its assets in
arbitrary subdirectories, and scraped images under images_scraped/. The
manager answers inventory questions about that tree for health reporting
without holding any state between calls.
*/
package snapshot
