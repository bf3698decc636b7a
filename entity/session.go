package entity

import (
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

type RefinementSession struct {
	tableName struct{} `pg:"refinement_session"`

	Id              string             `pg:"id,pk,type:varchar"`
	ProjectName     string             `pg:"project_name,type:varchar,notnull"`
	Framework       view.Framework     `pg:"framework,type:varchar,notnull"`
	OutputDir       string             `pg:"output_dir,type:varchar,notnull"`
	MaxIterations   int                `pg:"max_iterations,type:integer,notnull"`
	EventId         string             `pg:"event_id,type:varchar"`
	Status          view.SessionStatus `pg:"status,type:varchar,notnull"`
	Details         string             `pg:"details,type:varchar"`
	Outcome         view.OutcomeKind   `pg:"outcome,type:varchar"`
	Iterations      int                `pg:"iterations,type:integer,notnull"`
	RefinementCount int                `pg:"refinement_count,type:integer,notnull"`
	FinalReport     []byte             `pg:"final_report,type:bytea"`
	CreatedAt       time.Time          `pg:"created_at,type:timestamp without time zone,notnull"`
	CreatedBy       string             `pg:"created_by,type:varchar"`
	ExecutorId      string             `pg:"executor_id,type:varchar"`
	LastActive      time.Time          `pg:"last_active,type:timestamp without time zone,notnull"`
	RestartCount    int                `pg:"restart_count,type:integer"`
}

type RefinementIteration struct {
	tableName struct{} `pg:"refinement_iteration"`

	Id           string           `pg:"id,pk,type:varchar"`
	SessionId    string           `pg:"session_id,type:varchar,notnull"`
	Number       int              `pg:"number,type:integer,notnull"`
	Report       []byte           `pg:"report,type:bytea,notnull"`
	Explanation  string           `pg:"explanation,type:varchar"`
	ApplyStatus  view.ApplyStatus `pg:"apply_status,type:varchar"`
	ApplyDetails string           `pg:"apply_details,type:varchar"`
	StartedAt    time.Time        `pg:"started_at,type:timestamp without time zone,notnull"`
}
