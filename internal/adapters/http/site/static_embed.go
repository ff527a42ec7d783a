package site

import (
	"embed"
	"io/fs"
)

// silhouette is served when neither the portrait nor a placeholder exists.
const silhouette = "silhouette.svg"

//go:embed static/*
var embedded embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		return embedded
	}
	return sub
}
