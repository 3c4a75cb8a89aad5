package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Chat(ctx context.Context) error {

	message, err := GetSimpleText(a.reader, "Enter message", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fileID, err := GetSimpleText(a.reader, "Enter file id for context (optional)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	reply, err := a.api.Chat(ctx, message, fileID)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println(reply.Message)
	if reply.FileContext != "" {
		fmt.Println(reply.FileContext)
	}
	return nil
}
