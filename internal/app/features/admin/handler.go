// internal/app/features/admin/handler.go
package admin

import (
	applicationstore "github.com/auraclub/aurahub/internal/app/store/applications"
	contactstore "github.com/auraclub/aurahub/internal/app/store/contacts"
	eventstore "github.com/auraclub/aurahub/internal/app/store/events"
	flagstore "github.com/auraclub/aurahub/internal/app/store/flags"
	memberstore "github.com/auraclub/aurahub/internal/app/store/members"
	"github.com/auraclub/aurahub/internal/app/system/changefeed"
	"github.com/auraclub/aurahub/internal/app/system/uploader"
	"github.com/dalemusser/waffle/pantry/sse"
	"go.uber.org/zap"
)

// Handler serves the admin backend: dashboard, event management, and the
// submission review pages.
type Handler struct {
	Events       *eventstore.Store
	Applications *applicationstore.Store
	Contacts     *contactstore.Store
	Members      *memberstore.Store
	Flags        *flagstore.Store

	Counts    *changefeed.CountsProjector
	FlagsLive *changefeed.FlagsProjector
	Uploader  *uploader.Uploader

	Log *zap.Logger

	countsFeed *sse.Broker
}

type Deps struct {
	Events       *eventstore.Store
	Applications *applicationstore.Store
	Contacts     *contactstore.Store
	Members      *memberstore.Store
	Flags        *flagstore.Store
	Counts       *changefeed.CountsProjector
	FlagsLive    *changefeed.FlagsProjector
	Uploader     *uploader.Uploader
	Log          *zap.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		Events:       d.Events,
		Applications: d.Applications,
		Contacts:     d.Contacts,
		Members:      d.Members,
		Flags:        d.Flags,
		Counts:       d.Counts,
		FlagsLive:    d.FlagsLive,
		Uploader:     d.Uploader,
		Log:          d.Log,
		countsFeed:   sse.NewBroker(),
	}
}
