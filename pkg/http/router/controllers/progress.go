package controllers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
	"go.uber.org/zap"
)

// OptimizeWS runs one optimization per websocket connection. the client
// sends a single optimize request frame, the server streams progress
// frames during the run and a final result frame on convergence.
func (api *optimizerAPI) OptimizeWS(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("websocket upgrade error", zap.Error(err))
		return
	}

	go func() {
		defer conn.Close()

		payload, err := wsutil.ReadClientText(conn)
		if err != nil {
			api.log.Info("websocket read error", zap.Error(err))
			return
		}

		var request optimizeRequest
		if err := json.Unmarshal(payload, &request); err != nil {
			api.writeWSError(conn, "malformed request frame")
			return
		}
		if err := api.validateRequest(request); err != nil {
			api.writeWSError(conn, err.Error())
			return
		}

		progress := func(iteration int, bestScore float64, elapsedSecond float64) {
			frame := progressFrame{
				Type:          "progress",
				Iteration:     iteration,
				BestScore:     bestScore,
				ElapsedSecond: elapsedSecond,
			}
			if buf, err := json.Marshal(frame); err == nil {
				_ = wsutil.WriteServerText(conn, buf)
			}
		}

		// the request context dies with the handler once the connection is
		// hijacked, the run owns its own lifetime
		res, err := api.optimizeService.Optimize(context.Background(), request.toParams(), optimizer.ProgressFunc(progress))
		if err != nil {
			api.writeWSError(conn, err.Error())
			return
		}

		final := struct {
			Type string           `json:"type"`
			Data optimizeResponse `json:"data"`
		}{
			Type: "result",
			Data: newOptimizeResponse(request.Objective, res),
		}
		buf, err := json.Marshal(final)
		if err != nil {
			api.writeWSError(conn, "failed to encode result")
			return
		}
		_ = wsutil.WriteServerText(conn, buf)
	}()
}

func (api *optimizerAPI) writeWSError(conn net.Conn, message string) {
	var resp errorResponse
	resp.Error.Code = "OPTIMIZE_FAILED"
	resp.Error.Message = message
	if buf, err := json.Marshal(resp); err == nil {
		_ = wsutil.WriteServerText(conn, buf)
	}
}
