package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Upload(ctx context.Context) error {

	path, err := GetSimpleText(a.reader, "Enter path to a PDF file", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	defer f.Close()

	meta, err := a.api.Upload(ctx, path, f)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Uploaded %s (%d bytes), file id: %s\n", meta.OriginalFilename, meta.FileSize, meta.FileID)
	return nil
}

func (a *App) List(ctx context.Context) error {

	files, err := a.api.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if len(files) == 0 {
		fmt.Println("No files uploaded yet.")
		return nil
	}

	for _, f := range files {
		fmt.Printf("%s  %s  %d bytes  %s\n",
			f.FileID, f.OriginalFilename, f.FileSize, f.UploadTime.Format("2006-01-02 15:04"))
	}
	return nil
}
