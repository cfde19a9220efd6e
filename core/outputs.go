package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is one image array batch_sypiv writes for a snapshot pair.
type Artifact struct {
	Snapshot int    `json:"snapshot"`
	Frame    int    `json:"frame"`
	Path     string `json:"path"`
	Present  bool   `json:"present"`
	Size     int64  `json:"size"`
}

func ArtifactName(snapshot, frame int) string {
	return fmt.Sprintf("pair%d_%d.npy", snapshot, frame)
}

// Inventory lists pair<N>_1.npy and pair<N>_2.npy for N in 1..Snapshots
// under OutDir and whether each exists. It never writes.
func Inventory(p Params) []Artifact {
	artifacts := make([]Artifact, 0, 2*p.Snapshots)
	for snap := 1; snap <= p.Snapshots; snap++ {
		for frame := 1; frame <= 2; frame++ {
			a := Artifact{
				Snapshot: snap,
				Frame:    frame,
				Path:     filepath.Join(p.OutDir, ArtifactName(snap, frame)),
			}
			if info, err := os.Stat(a.Path); err == nil && !info.IsDir() {
				a.Present = true
				a.Size = info.Size()
			}
			artifacts = append(artifacts, a)
		}
	}
	return artifacts
}

// Complete reports whether every expected artifact is present.
func Complete(artifacts []Artifact) bool {
	for _, a := range artifacts {
		if !a.Present {
			return false
		}
	}
	return true
}
