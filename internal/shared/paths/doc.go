// Package paths provides the snapshot directory layout and safe path joining.
//
// This package defines the canonical layout of a site snapshot and the single
// containment primitive every file lookup goes through. All request-to-disk
// mapping must use SafeJoin so that no request can address a file outside the
// snapshot root.
//
// # Snapshot Layout
//
//	<root>/
//	  ├── index.html       (served for the root route)
//	  ├── ...              (captured pages, scripts, styles)
//	  └── images_scraped/  (captured image assets)
//
// # Usage
//
//	import "github.com/snapserve/snapserve/internal/shared/paths"
//
//	// Map a request path into the root
//	full, err := paths.SafeJoin(root, "css/site.css")
//	if err != nil {
//	    // request tried to escape the root
//	}
//
//	// Image assets live under a fixed subdirectory
//	imgRoot := paths.ImageRoot(root)
package paths
