package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/avvvet/pickem-services/internal/gradesvc/broker"
	"github.com/avvvet/pickem-services/internal/gradesvc/service"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth         *jwtauth.JWTAuth
	settlementService *service.SettlementService
	statsService      *service.StatsService
	broker            *broker.Broker
}

func NewHandler(settlementService *service.SettlementService, statsService *service.StatsService, b *broker.Broker) *Handler {
	return &Handler{
		settlementService: settlementService,
		statsService:      statsService,
		broker:            b,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "grade service is running at port " + os.Getenv("GRADE_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003025,
		"exp":        expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
