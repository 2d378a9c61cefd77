// Package fileutil provides the filesystem primitives extsort is built on:
// validating the source and destination roots and walking the source tree.
//
// # Walking
//
// Walk returns a lazy sequence of every regular file under a root, at any
// depth. Entries that cannot be inspected are reported as *WalkError values
// in the sequence and the walk moves on; only a failure to read the root
// itself is marked fatal (WalkError.Root).
//
//	for entry, err := range fileutil.Walk(src, fileutil.WalkOptions{}) {
//	    if err != nil {
//	        log.Printf("skipping: %v", err)
//	        continue
//	    }
//	    fmt.Println(entry.Path)
//	}
//
// # Filtering
//
//   - Only regular files are yielded; directories, devices, sockets and
//     pipes never are
//   - Symbolic links are yielded when they resolve to a regular file and
//     are never followed into directories
//   - Exclude patterns use doublestar syntax against the slash-separated
//     path relative to the root; a matching directory is pruned
//   - SkipDirs prunes absolute directories, such as a destination nested
//     inside the source
package fileutil
