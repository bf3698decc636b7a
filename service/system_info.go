// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	LISTEN_ADDRESS   = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED   = "ORIGIN_ALLOWED"
	LOG_LEVEL        = "LOG_LEVEL"
	OUTPUT_ROOT      = "OUTPUT_ROOT"
	MAX_ITERATIONS   = "MAX_ITERATIONS"
	LLM_API_KEY      = "LLM_API_KEY"
	LLM_MODEL        = "LLM_MODEL"
	LLM_PROXY        = "LLM_PROXY"
	VALIDATOR_URL    = "VALIDATOR_URL"
	VALIDATOR_KEY    = "VALIDATOR_API_KEY"
	SERVICE_API_KEY  = "SERVICE_API_KEY"
	TOKEN_PUBLIC_KEY = "TOKEN_PUBLIC_KEY"

	PG_HOST     = "PG_HOST"
	PG_PORT     = "PG_PORT"
	PG_DB       = "PG_DB"
	PG_USER     = "PG_USER"
	PG_PASSWORD = "PG_PASSWORD"

	OLRIC_DISCOVERY_MODE    = "OLRIC_DISCOVERY_MODE"
	OLRIC_REPLICA_COUNT     = "OLRIC_REPLICA_COUNT"
	NAMESPACE               = "NAMESPACE"
	GENERATION_PIPELINE_URL = "GENERATION_PIPELINE_URL"
)

const defaultMaxIterations = 5

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetOutputRoot() string
	GetMaxIterations() int
	GetLLMApiKey() string
	GetLLMModel() string
	GetLLMProxy() string
	GetValidatorUrl() string
	GetValidatorApiKey() string
	GetServiceApiKey() string
	GetTokenPublicKey() string
	GetPGHost() string
	GetPGPort() int
	GetPGDB() string
	GetPGUser() string
	GetPGPassword() string
	GetOlricDiscoveryMode() string
	GetOlricReplicaCount() int
	GetNamespace() string
	GetGenerationPipelineUrl() string
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setString(LISTEN_ADDRESS, ":8080")
	g.setString(ORIGIN_ALLOWED, "")
	g.setString(LOG_LEVEL, "")
	g.setString(OUTPUT_ROOT, "output")
	if err := g.setInt(MAX_ITERATIONS, defaultMaxIterations); err != nil {
		return err
	}
	g.setString(LLM_API_KEY, "")
	g.setString(LLM_MODEL, "")
	g.setString(LLM_PROXY, "")
	g.setString(VALIDATOR_URL, "")
	g.setString(VALIDATOR_KEY, "")
	g.setString(SERVICE_API_KEY, "")
	g.setString(TOKEN_PUBLIC_KEY, "")

	g.setString(PG_HOST, "localhost")
	if err := g.setInt(PG_PORT, 5432); err != nil {
		return err
	}
	g.setString(PG_DB, "site_refinement")
	g.setString(PG_USER, "postgres")
	g.setString(PG_PASSWORD, "")

	g.setString(OLRIC_DISCOVERY_MODE, "")
	if err := g.setInt(OLRIC_REPLICA_COUNT, 0); err != nil {
		return err
	}
	g.setString(NAMESPACE, "")
	g.setString(GENERATION_PIPELINE_URL, "")

	if g.GetValidatorUrl() == "" {
		return fmt.Errorf("%s env is not set", VALIDATOR_URL)
	}

	return nil
}

func (g systemInfoServiceImpl) setString(env string, defaultValue string) {
	value := os.Getenv(env)
	if value == "" {
		value = defaultValue
	}
	g.systemInfoMap[env] = value
}

func (g systemInfoServiceImpl) setInt(env string, defaultValue int) error {
	str := os.Getenv(env)
	if str == "" {
		g.systemInfoMap[env] = defaultValue
		return nil
	}
	value, err := strconv.Atoi(str)
	if err != nil {
		return fmt.Errorf("%s env value '%s' is not an integer", env, str)
	}
	g.systemInfoMap[env] = value
	return nil
}

func (g systemInfoServiceImpl) GetListenAddress() string { return g.systemInfoMap[LISTEN_ADDRESS].(string) }
func (g systemInfoServiceImpl) GetOriginAllowed() string { return g.systemInfoMap[ORIGIN_ALLOWED].(string) }
func (g systemInfoServiceImpl) GetLogLevel() string      { return g.systemInfoMap[LOG_LEVEL].(string) }
func (g systemInfoServiceImpl) GetOutputRoot() string    { return g.systemInfoMap[OUTPUT_ROOT].(string) }
func (g systemInfoServiceImpl) GetMaxIterations() int    { return g.systemInfoMap[MAX_ITERATIONS].(int) }
func (g systemInfoServiceImpl) GetLLMApiKey() string     { return g.systemInfoMap[LLM_API_KEY].(string) }
func (g systemInfoServiceImpl) GetLLMModel() string      { return g.systemInfoMap[LLM_MODEL].(string) }
func (g systemInfoServiceImpl) GetLLMProxy() string      { return g.systemInfoMap[LLM_PROXY].(string) }
func (g systemInfoServiceImpl) GetValidatorUrl() string  { return g.systemInfoMap[VALIDATOR_URL].(string) }
func (g systemInfoServiceImpl) GetValidatorApiKey() string {
	return g.systemInfoMap[VALIDATOR_KEY].(string)
}
func (g systemInfoServiceImpl) GetServiceApiKey() string {
	return g.systemInfoMap[SERVICE_API_KEY].(string)
}
func (g systemInfoServiceImpl) GetTokenPublicKey() string {
	return g.systemInfoMap[TOKEN_PUBLIC_KEY].(string)
}
func (g systemInfoServiceImpl) GetPGHost() string     { return g.systemInfoMap[PG_HOST].(string) }
func (g systemInfoServiceImpl) GetPGPort() int        { return g.systemInfoMap[PG_PORT].(int) }
func (g systemInfoServiceImpl) GetPGDB() string       { return g.systemInfoMap[PG_DB].(string) }
func (g systemInfoServiceImpl) GetPGUser() string     { return g.systemInfoMap[PG_USER].(string) }
func (g systemInfoServiceImpl) GetPGPassword() string { return g.systemInfoMap[PG_PASSWORD].(string) }
func (g systemInfoServiceImpl) GetOlricDiscoveryMode() string {
	return g.systemInfoMap[OLRIC_DISCOVERY_MODE].(string)
}
func (g systemInfoServiceImpl) GetOlricReplicaCount() int {
	return g.systemInfoMap[OLRIC_REPLICA_COUNT].(int)
}
func (g systemInfoServiceImpl) GetNamespace() string { return g.systemInfoMap[NAMESPACE].(string) }
func (g systemInfoServiceImpl) GetGenerationPipelineUrl() string {
	return g.systemInfoMap[GENERATION_PIPELINE_URL].(string)
}
