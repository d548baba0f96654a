package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/lukemay/quizroom-go/internal/model"
)

func newWatchCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "watch CODE",
		Short: "Join a room and print every broadcast as it arrives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wsURL, err := websocketURL(serverURL)
			if err != nil {
				return err
			}

			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
			}
			defer func() { _ = conn.Close() }()

			join := map[string]any{
				"event": model.EventJoinRoom,
				"data":  map[string]string{"code": args[0], "name": name},
			}
			if err := conn.WriteJSON(join); err != nil {
				return fmt.Errorf("failed to join room: %w", err)
			}

			// Close the connection on interrupt so ReadMessage returns
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			go func() {
				<-interrupt
				_ = conn.Close()
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "watching room %s (ctrl-c to stop)\n", args[0])
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					return nil
				}

				var buf bytes.Buffer
				if err := json.Indent(&buf, data, "", "  "); err != nil {
					buf.Reset()
					buf.Write(data)
				}
				fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "quizctl", "Display name to join with")
	return cmd
}

// websocketURL converts the configured HTTP server URL to the ws endpoint
func websocketURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"
	return u.String(), nil
}
