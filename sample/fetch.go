package sample

import (
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"

	"github.com/tmr232/resumable/await"
	"github.com/tmr232/resumable/step"
)

type ServerData struct {
	Subject string `json:"subject"`
}

var ErrFetch = xerrors.New("could not fetch data from the server")

// FakeFetch mimics a network request that settles after delay.
func FakeFetch(good bool, delay time.Duration) await.Future[ServerData] {
	if good {
		return await.After(delay, ServerData{Subject: "generators"}, nil)
	}
	return await.After(delay, ServerData{}, ErrFetch)
}

// FetchSubject awaits fetch and returns the subject it delivered. A failed
// fetch is reported to log and handled: the computation completes with an
// empty subject.
func FetchSubject(fetch await.Future[ServerData], log *slog.Logger) *step.Driver[await.Future[ServerData], ServerData, string] {
	return step.Go(func(y *step.Yielder[await.Future[ServerData], ServerData]) (string, error) {
		data, err := y.Yield(fetch)
		if err != nil {
			log.Error("fetch failed", "err", err)
			return "", nil
		}
		log.Info("fetched", "subject", data.Subject)
		return data.Subject, nil
	}, step.WithLogger(log), step.WithName("fetch"))
}
