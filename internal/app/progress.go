package app

import (
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"
)

// progress is a job-count bar. A nil *progress is a no-op.
type progress struct {
	p   *uiprogress.Progress
	bar *uiprogress.Bar
}

func startProgress(w io.Writer, total int) *progress {
	p := uiprogress.New()
	p.SetOut(w)
	p.Start()

	bar := p.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("jobs %d/%d", b.Current(), total)
	})
	return &progress{p: p, bar: bar}
}

func (pr *progress) incr() {
	if pr != nil {
		pr.bar.Incr()
	}
}

func (pr *progress) stop() {
	if pr != nil {
		pr.p.Stop()
	}
}
