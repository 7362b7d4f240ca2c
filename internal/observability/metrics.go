package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsUploaded counts document uploads accepted through share links.
	DocumentsUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "documo_documents_uploaded_total",
		Help: "Total number of documents uploaded",
	})

	// DocumentReviews counts staff review decisions by outcome (valid/invalid).
	DocumentReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "documo_document_reviews_total",
		Help: "Total number of staff document review decisions",
	}, []string{"outcome"})

	// RequestsCompleted counts requests whose required document set was fulfilled.
	RequestsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "documo_requests_completed_total",
		Help: "Total number of document requests completed",
	})

	// ShareLinksIssued counts share links created, by trigger (staff/invalidation).
	ShareLinksIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "documo_share_links_issued_total",
		Help: "Total number of share links issued",
	}, []string{"trigger"})

	// ShareLinksSwept counts expired share links removed by the periodic sweep.
	ShareLinksSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "documo_share_links_swept_total",
		Help: "Total number of expired share links deleted by the sweep",
	})

	// MailFailures counts outbound notifications that could not be delivered.
	// Core flows proceed regardless; this is the only trace of the loss.
	MailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "documo_mail_failures_total",
		Help: "Total number of outbound mail deliveries that failed",
	})
)
