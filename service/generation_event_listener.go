package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Netcracker/qubership-site-refinement-service/client"
	"github.com/Netcracker/qubership-site-refinement-service/utils"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	"github.com/buraksezer/olric"
	log "github.com/sirupsen/logrus"
)

type GenerationEventListener interface {
	Start()
	listen(message olric.DTopicMessage)
}

func NewGenerationEventListener(op client.OlricProvider, sessionService SessionService) GenerationEventListener {
	gel := generationEventListenerImpl{
		op:             op,
		sessionService: sessionService,
		isReadyWg:      sync.WaitGroup{},
	}
	return &gel
}

type generationEventListenerImpl struct {
	op                 client.OlricProvider
	sessionService     SessionService
	siteGeneratedTopic *olric.DTopic
	isReadyWg          sync.WaitGroup
}

func (p *generationEventListenerImpl) Start() {
	p.isReadyWg.Add(1)
	utils.SafeAsync(func() {
		p.initSiteGeneratedDTopic()
	})
}

const SiteGeneratedTopicName = "site-generated"

func (p *generationEventListenerImpl) listen(message olric.DTopicMessage) {
	str, ok := message.Message.(string)
	if !ok {
		log.Warnf("GenerationEventListener.listen: unexpected event %+v, will not be processed", message.Message)
		return
	}

	var notification view.SiteGeneratedNotification

	err := json.Unmarshal([]byte(str), &notification)
	if err != nil {
		log.Errorf("GenerationEventListener.listen: error unmarshalling generation notification: %v", err)
		return
	}

	// the event id keeps redelivered notifications from spawning duplicate sessions
	eventId := utils.CreateSHA256Hash([]byte(str))

	sessionId, err := p.sessionService.CreateSessionFromEvent(context.Background(), eventId, notification)
	if err != nil {
		log.Errorf("GenerationEventListener.listen: error creating session for event %+v: %v", notification, err)
		return
	}
	log.Infof("GenerationEventListener.listen: queued refinement session %s for project '%s'", sessionId, notification.ProjectName)
}

func (p *generationEventListenerImpl) initSiteGeneratedDTopic() {
	var err error
	topicName := SiteGeneratedTopicName
	p.siteGeneratedTopic, err = p.op.Get().NewDTopic(topicName, 10000, olric.UnorderedDelivery)
	if err != nil {
		log.Errorf("Failed to create DTopic %s: %s", SiteGeneratedTopicName, err.Error())
	}

	_, err = p.siteGeneratedTopic.AddListener(p.listen)
	if err != nil {
		log.Errorf("Failed to add listener to DTopic %s: %s", SiteGeneratedTopicName, err.Error())
	}

	p.isReadyWg.Done()
}
