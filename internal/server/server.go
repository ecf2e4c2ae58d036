package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayadlabs/propchat/config"
	"github.com/ayadlabs/propchat/internal/dialogue"
)

const webhookApology = "Sorry, I'm having trouble processing your request. Please try again."

// Server exposes the assistant over HTTP: a Twilio-style WhatsApp webhook,
// a session reset endpoint, health, and metrics.
type Server struct {
	orch   *dialogue.Orchestrator
	cfg    config.ServerConfig
	logger *log.Logger
}

func New(orch *dialogue.Orchestrator, cfg config.ServerConfig) *Server {
	return &Server{
		orch:   orch,
		cfg:    cfg,
		logger: log.New(log.Writer(), "[HTTP] ", log.LstdFlags),
	}
}

func (s *Server) Run() error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/webhook", s.handleWebhook)
	e.POST("/sessions/:id/reset", s.handleReset)

	s.logger.Printf("listening on %s", s.cfg.Address)
	return e.Start(s.cfg.Address)
}

// handleWebhook receives a Twilio form post and answers with TwiML. The user
// always gets a reply, so any internal failure collapses into the apology
// message.
func (s *Server) handleWebhook(c echo.Context) error {
	from := strings.TrimPrefix(c.FormValue("From"), "whatsapp:")
	body := strings.TrimSpace(c.FormValue("Body"))
	s.logger.Printf("message from %s: %q", from, body)

	reply := s.respond(c, sessionIDFor(from), body)

	var resp twimlResponse
	if mediaURL := ExtractMediaURL(reply); mediaURL != "" {
		resp = mediaResponse(mediaURL)
	} else {
		resp = textResponse(SplitMessage(reply, s.cfg.MessageLimit))
	}

	out, err := renderTwiML(resp)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml", []byte(out))
}

func (s *Server) respond(c echo.Context, sessionID, body string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("panic handling %s: %v", sessionID, r)
			reply = webhookApology
		}
	}()
	return s.orch.Respond(c.Request().Context(), sessionID, body)
}

func (s *Server) handleReset(c echo.Context) error {
	id := c.Param("id")
	if err := s.orch.Reset(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reset", "session": id})
}

func sessionIDFor(phoneNumber string) string {
	return "whatsapp_" + phoneNumber
}
