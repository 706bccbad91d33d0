package handlers

import (
	"frappeinsight/service"
)

// @title           Frappe Insight API
// @version         1.0
// @description     Conversational assistant over Frappe ERP data - ask natural-language questions, get answers and charts

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

type Handlers struct {
	chat *service.ChatService
}

func New(chat *service.ChatService) *Handlers {
	return &Handlers{chat: chat}
}
