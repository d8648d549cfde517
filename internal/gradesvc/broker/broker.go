package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avvvet/pickem-services/internal/comm"
	"github.com/avvvet/pickem-services/internal/gradesvc/service"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const (
	TopicSettlement  = "settlement.service"
	TopicGameSettled = "game.settled"
)

type Broker struct {
	Conn              *nats.Conn
	SettlementService *service.SettlementService
}

func NewBroker(nc *nats.Conn, settlementService *service.SettlementService) *Broker {
	return &Broker{
		Conn:              nc,
		SettlementService: settlementService,
	}
}

// handles messages coming from the score feed and operator tooling
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.SettlementMsg{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case "score-final":
		req := comm.ScoreFinal{}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			log.Errorf("Error %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := b.SettlementService.FinalizeGame(ctx, req.GameID, req.HomeScore, req.AwayScore)
		if err != nil {
			log.Errorf("Error [SettlementService.FinalizeGame] game %d %s", req.GameID, err)
			return
		}

		b.PublishGameSettled(res)
	case "reevaluate":
		req := comm.ReevaluateRequest{}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			log.Errorf("Error %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := b.SettlementService.ReevaluateGamePicks(ctx, req.GameID)
		if err != nil {
			log.Errorf("Error [SettlementService.ReevaluateGamePicks] game %d %s", req.GameID, err)
			return
		}

		b.PublishGameSettled(res)
	case "force-final":
		req := comm.ForceFinal{}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			log.Errorf("Error %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := b.SettlementService.ForceFinalizeGame(ctx, req.GameID)
		if err != nil {
			log.Errorf("Error [SettlementService.ForceFinalizeGame] game %d %s", req.GameID, err)
			return
		}

		b.PublishGameSettled(res)
	default:
		log.Warnf("unknown settlement message type: %s", msg.Type)
	}
}

// PublishGameSettled announces a finished settlement pass on game.settled.
func (b *Broker) PublishGameSettled(res *service.SettlementResult) {
	outcomes := make([]comm.PickOutcome, 0, len(res.Evaluations))
	for _, ev := range res.Evaluations {
		outcomes = append(outcomes, comm.PickOutcome{
			PickID:         ev.PickID,
			UserID:         ev.UserID,
			Side:           ev.Side,
			Result:         string(ev.Result),
			ActualMargin:   ev.ActualMargin.String(),
			RequiredMargin: ev.RequiredMargin.String(),
			TriplePlay:     ev.TriplePlay,
		})
	}

	settled := comm.GameSettled{
		RunID:        res.RunID,
		GameID:       res.Game.ID,
		Season:       res.Game.Season,
		Week:         res.Game.Week,
		HomeTeam:     res.Game.HomeTeam,
		AwayTeam:     res.Game.AwayTeam,
		HomeScore:    res.Game.HomeScore.Int64,
		AwayScore:    res.Game.AwayScore.Int64,
		Forced:       res.Game.Forced,
		PicksUpdated: res.PicksUpdated,
		Outcomes:     outcomes,
		SettledAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(settled)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	if err := b.Publish(TopicGameSettled, payload); err != nil {
		log.Errorf("Error publishing game.settled for game %d %s", settled.GameID, err)
	}
}

func (b *Broker) SubscribeSettlement(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	return b.Conn.Publish(topic, payload)
}
