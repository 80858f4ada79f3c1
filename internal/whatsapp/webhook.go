package whatsapp

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go/twiml"
	"go.uber.org/zap"
)

// CommandHandler answers one inbound message. bot.Handler implements it.
type CommandHandler interface {
	Handle(ctx context.Context, from, body string) string
}

// Webhook receives Twilio's inbound-message callbacks and answers with TwiML.
type Webhook struct {
	handler CommandHandler
	log     *zap.Logger
}

func NewWebhook(handler CommandHandler, log *zap.Logger) *Webhook {
	return &Webhook{handler: handler, log: log}
}

func (wh *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := wh.log.With(zap.String("request_id", uuid.NewString()))

	if err := r.ParseForm(); err != nil {
		log.Warn("bad webhook form", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	from := r.PostForm.Get("From")
	body := r.PostForm.Get("Body")
	log.Info("inbound message", zap.String("from", from), zap.Int("len", len(body)))

	reply := wh.handler.Handle(r.Context(), from, body)

	doc, err := twiml.Messages([]twiml.Element{&twiml.MessagingMessage{Body: reply}})
	if err != nil {
		log.Error("twiml render failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Warn("write reply failed", zap.Error(err))
	}
}
