package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"bmicalc/services"
	"bmicalc/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT   *services.RealtimeHub
	Calc *services.BMICalculator
}

func NewRealtimeController(rt *services.RealtimeHub, calc *services.BMICalculator) *RealtimeController {
	return &RealtimeController{RT: rt, Calc: calc}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// BMIWS keeps a live page open. Every message the page sends is a
// CalculateInput; the answer is the stream of display commands.
func (rc *RealtimeController) BMIWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			rc.RT.Unregister(cl)
			return
		}
		var input CalculateInput
		if err := json.Unmarshal(msg, &input); err != nil {
			// A bad message is answered, not fatal to the page.
			_ = cl.Send(gin.H{"op": "error", "error": "invalid message: " + err.Error()})
			continue
		}
		rc.handleMessage(cl, input)
	}
}

func (rc *RealtimeController) handleMessage(cl *services.WSClient, input CalculateInput) {
	calc, err := calculatorFor(rc.Calc, input.System)
	if err != nil {
		_ = cl.Send(gin.H{"op": "error", "error": err.Error()})
		return
	}
	page := services.NewRemotePage(input.Fields, calc.FieldValidators(), func(cmd services.PageCommand) {
		if err := cl.Send(cmd); err != nil {
			utils.Log.WithField("component", "realtime").WithError(err).Debug("page write failed")
		}
	})
	_, _ = calc.Calculate(page)
}
