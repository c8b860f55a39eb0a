package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// ToolRequest is the body of POST /tool.
type ToolRequest struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

// ToolResponse carries either a report or an error.
type ToolResponse struct {
	Result *Report `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

const toolSchema = `{
  "tools": [
    {
      "name": "conic",
      "description": "Derive center, foci, directrices, axes, parametric form and equation of a conic",
      "params": {
        "focus": "string, e.g. \"0,0\"",
        "vertex": "string, e.g. \"1,0\"",
        "eccentricity": "string (rational, oo, or variable name) or expression tree",
        "direction_sign": "optional string or expression tree, 1 or -1",
        "assume": "optional list of \"name:fact,fact\""
      }
    },
    {
      "name": "line",
      "description": "Derive direction, equation, projection and perpendicular of a line",
      "params": {
        "through": "string, e.g. \"0,0\"",
        "to": "string, e.g. \"1,2\"",
        "project": "optional point string",
        "perpendicular_through": "optional point string",
        "assume": "optional list of \"name:fact,fact\""
      }
    }
  ]
}
`

// handleTool dispatches one tool call in a fresh session.
func (a *app) handleTool(req ToolRequest) ToolResponse {
	s := a.newSession()
	var (
		r   *Report
		err error
	)
	switch req.Tool {
	case "conic":
		var p ConicRequest
		if err = decodeParams(req.Params, &p); err == nil {
			r, err = conicReport(s, p)
		}
	case "line":
		var p LineRequest
		if err = decodeParams(req.Params, &p); err == nil {
			r, err = lineReport(s, p)
		}
	default:
		err = fmt.Errorf("unknown tool: %q", req.Tool)
	}
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	return ToolResponse{Result: r}
}

func decodeParams(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return errors.New("missing params")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *app) handler() http.Handler {
	mux := http.NewServeMux()

	// POST /tool
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.logger.Error("panic in /tool", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ToolResponse{Error: err.Error()})
			return
		}
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, ToolResponse{Error: "invalid JSON: trailing data"})
			return
		}

		resp := a.handleTool(req)
		a.logger.Debug("tool call", zap.String("tool", req.Tool), zap.Bool("ok", resp.Error == ""))
		writeJSON(w, http.StatusOK, resp)
	})

	// GET /schema
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, toolSchema)
	})

	// GET /health
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return mux
}

func serveCmd(a *app) *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve conic and line computations over HTTP",
		Long: `Exposes the conic and line commands as JSON tool calls.

  POST /tool    execute a tool call, e.g. {"tool":"conic","params":{...}}
  GET  /schema  tool schema for agent registration
  GET  /health  health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           a.handler(),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			a.logger.Info("symgeo server listening", zap.String("addr", srv.Addr))

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	c.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	return c
}
