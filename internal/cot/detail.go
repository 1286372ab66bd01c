package cot

import (
	"fmt"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/reports"
	"github.com/spboyer/cotboard/internal/route"
)

// BuildSampleDetail renders a task result: a summary block followed by one block
// per recorded sample, in file order.
func BuildSampleDetail(r route.Route, result *models.TaskResult, lookup models.ModelLookup) (*doc.Node, error) {
	if r.Model == "" {
		return nil, fmt.Errorf("task %q: %w", r.Task, reports.ErrMissingModel)
	}
	m, err := lookup.Lookup(r.Model)
	if err != nil {
		return nil, err
	}

	info := doc.Container("cot__information",
		doc.Text("Task: "+r.Task),
		doc.Text("Model: ", doc.ModelLink(m)),
		doc.Text("Score: "+Round(result.Score)),
	)

	samples := doc.Container("samples")
	for _, out := range result.ModelOutputs {
		samples.Children = append(samples.Children, doc.Container("sample",
			doc.Text("The following question was asked:"),
			doc.Conversation(doc.RoleUser, out.Question),
			doc.Text("The following answer was expected:"),
			doc.Conversation(doc.RoleAssistant, out.CorrectAnswer.String()),
			doc.Text("The model responded in the following way:"),
			doc.MarkdownConversation(doc.RoleAssistant, out.ModelAnswer),
			doc.Text("This answer was "+verdict(out.Correct)+"."),
		))
	}

	back := r.Back()
	return doc.Container("cot",
		doc.BackLink("← Back to table", &back),
		info,
		samples,
	), nil
}

func verdict(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
