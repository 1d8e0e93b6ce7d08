// Package io provides JSON import and export for scene snapshots.
//
// # Overview
//
// A snapshot records a rack layout, the guarding rules and the guards
// selected by a solve. The format enables:
//
//   - Inspection of solver results by external tools
//   - Re-solving a stored layout without regenerating it
//   - Keeping a per-round record next to rendered images
//
// # JSON Format
//
//	{
//	  "run_id": "0b6c...",
//	  "round": 2,
//	  "boundary_rect": {"top_left": {"x": 0, "y": 100}, "bottom_right": {"x": 100, "y": 0}},
//	  "epsilon": 3,
//	  "num_racks": 1,
//	  "racks": [
//	    {"seg": {"pt1": {"x": 20, "y": 10}, "pt2": {"x": 20, "y": 60}}, "guarding_dir": "FROM RIGHT"}
//	  ],
//	  "num_guards": 1,
//	  "guards": [{"loc": {"x": 30, "y": 35}}],
//	  "guarding_model": "Poser's Choice",
//	  "coverage_requirement": "Complete Coverage",
//	  "delta": "NA",
//	  "grid": {"x": [20], "y": [10, 60]}
//	}
//
// Guarding directions, the model and the coverage requirement are written
// as display labels. Import also accepts the short config names ("right",
// "posers", "complete"). Delta is "NA" under complete coverage.
//
// The grid field is optional. When present, import restores the refined
// grid; otherwise the grid is rebuilt from rack endpoints.
//
// # Import
//
// Use [ImportJSON] to read a scene from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	sc, err := io.ImportJSON("scene.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Imported racks are fixed. Their clearance is re-checked against the
// stored epsilon, so a hand-edited file with overlapping racks is rejected.
//
// # Export
//
// Use [ExportJSON] to write a snapshot to a file, or [WriteJSON] to write
// to any io.Writer.
package io
