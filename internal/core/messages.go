package core

import "fmt"

// StatusTexts holds the fixed status line texts of one workflow kind.
type StatusTexts struct {
	Loading    string
	Success    string
	Failure    string // used when the agent service supplies no message
	Exception  string // used for unexpected errors inside the workflow
	Validation string // empty when the kind has no required field
}

var statusTexts = map[WorkflowKind]StatusTexts{
	KindGenerate: {
		Loading:    "Generating developer content from GitHub activity...",
		Success:    "Content generated successfully! Navigate to Review & Deliver to edit and send.",
		Failure:    "Failed to generate content. Please try again.",
		Exception:  "An error occurred while generating content.",
		Validation: "Please enter a repository name",
	},
	KindDeliver: {
		Loading:    "Sending email and creating calendar events...",
		Success:    "Content delivered successfully!",
		Failure:    "Failed to deliver content.",
		Exception:  "An error occurred during delivery.",
		Validation: "Please enter a recipient email address",
	},
	KindAnalyze: {
		Loading:    "Analyzing engagement data and generating optimization insights...",
		Success:    "Analysis complete! Review the optimization insights below.",
		Failure:    "Failed to analyze engagement data.",
		Exception:  "An error occurred during analysis.",
		Validation: "Please enter a campaign name",
	},
	KindScan: {
		Loading:   "Scanning latest developer trends in real-time...",
		Success:   "Trend scan complete! Review the latest trends below.",
		Failure:   "Failed to scan trends.",
		Exception: "An error occurred while scanning trends.",
	},
}

// StatusText returns the status texts for kind.
func StatusText(kind WorkflowKind) StatusTexts {
	return statusTexts[kind]
}

// TrendAppliedText is the status shown after a trend is loaded into focus.
func TrendAppliedText(name string) string {
	return fmt.Sprintf("Trend \"%s\" loaded into content focus. Click Generate Content to create content around it.", name)
}

// FocusSeed renders the content focus derived from a trend.
func FocusSeed(name, angle string) string {
	return fmt.Sprintf("Trending topic: %s. Content angle: %s", name, angle)
}
