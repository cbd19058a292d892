// Package jsonfile edits JSON, YAML and TOML documents as value trees.
//
// A location in the tree is a sequence of steps. Key steps into an object
// member; Match (and the Equals and Where helpers) steps into the first array
// element a predicate accepts:
//
//	f, _ := jsonfile.Open(path, ops)
//	_, _ = f.ReadJSON(ctx)
//	_, err := f.Set([]jsonfile.Step{jsonfile.Key("users"), jsonfile.Where("id", 7)}, "active", true)
//	_ = f.WriteJSON(ctx)
//
// A predicate that matches nothing yields an empty array and leaves the tree
// alone. Applying a step to a value of the wrong shape fails with
// errs.ErrParseStructure; mutations already made on the way are not rolled
// back.
package jsonfile
