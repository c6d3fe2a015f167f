// Package flow turns an ordered list of cohort steps into a drawn
// attrition diagram.
//
// A diagram is a vertical column of boxes, one per [Step], connected by
// downward arrows. Whenever a transition drops records, a side box appears
// next to the connector stating what was excluded and how many. Counts
// must be non-increasing; a rising count is an input error, never silently
// corrected.
//
// [Render] is the entry point. It validates the sequence, resolves the
// style cascade, plans geometry, and emits backend-neutral draw ops onto a
// canvas surface. Export to concrete file formats lives in the sink
// subpackage.
//
//	steps := []flow.Step{
//		{Heading: "Registered", Count: 350},
//		{Heading: "Screened", Count: 150, ExclusionDescription: "Not eligible"},
//		{Heading: "Analysed", Count: 120, ExclusionDescription: "Lost to follow-up"},
//	}
//	fig, _, err := flow.Render(steps, flow.WithStyle("colorful"), flow.WithTitle("Study"))
package flow
