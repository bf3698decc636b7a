package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/view"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

// ValidatorClient talks to the external validation service which renders the
// generated site in a headless browser and runs the automated checks. Only
// the report shape is fixed here, how the checks run is the validator's business.
type ValidatorClient interface {
	ValidateSite(ctx context.Context, req view.ValidateSiteRequest) (*view.ValidatorReport, error)
}

func NewValidatorClient(validatorUrl string, apiKey string) ValidatorClient {
	parsedUrl, err := url.Parse(validatorUrl)
	validatorHost := ""
	if err != nil {
		log.Errorf("Can't parse validator url: %v", err)
	} else {
		validatorHost = parsedUrl.Hostname()
	}

	tr := http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	cl := http.Client{Transport: &tr, Timeout: time.Second * 600}
	client := resty.NewWithClient(&cl)
	if validatorHost != "" {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(validatorHost))
	}

	return &validatorClientImpl{validatorUrl: validatorUrl, apiKey: apiKey, client: client}
}

type validatorClientImpl struct {
	validatorUrl string
	apiKey       string
	client       *resty.Client
}

func (v validatorClientImpl) ValidateSite(ctx context.Context, req view.ValidateSiteRequest) (*view.ValidatorReport, error) {
	request := v.client.R().SetContext(ctx)
	if v.apiKey != "" {
		request.SetHeader("api-key", v.apiKey)
	}
	request.SetHeader("Content-Type", "application/json")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	request.SetBody(body)

	resp, err := request.Post(fmt.Sprintf("%s/api/v1/validate", v.validatorUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to validate site for session %s: %s", req.SessionId, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to validate site for session %s: status code %d %v", req.SessionId, resp.StatusCode(), string(resp.Body()))
	}

	var report view.ValidatorReport
	err = json.Unmarshal(resp.Body(), &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
