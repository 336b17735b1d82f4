package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// Mailer queues outbound notification emails. Queueing never blocks and
// never fails; delivery is attempted in the background and delivery errors
// are logged, not propagated.
type Mailer interface {
	QueueWelcomeEmail(email, name, profileURL string)
	QueueConnectionAcceptedEmail(email, senderName, recipientName, profileURL string)
	QueueCommentEmail(email, recipientName, commenterName, postURL, comment string)
}

type emailJob struct {
	kind    string
	to      string
	subject string
	html    string
}

// EmailService delivers transactional email through Resend. Jobs are drained
// by a single worker goroutine started with Start; a full queue drops the
// job with a warning rather than stalling a request handler.
type EmailService struct {
	client *resend.Client
	from   string
	jobs   chan emailJob
	log    *logrus.Entry
}

func NewEmailService(apiKey, fromEmail, fromName string, log *logrus.Entry) *EmailService {
	s := &EmailService{
		from: fmt.Sprintf("%s <%s>", fromName, fromEmail),
		jobs: make(chan emailJob, 64),
		log:  log,
	}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

// Start runs the delivery worker until the context is cancelled.
func (s *EmailService) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				s.log.Info("email worker stopped")
				return
			case job := <-s.jobs:
				s.deliver(job)
			}
		}
	}()
}

func (s *EmailService) deliver(job emailJob) {
	if s.client == nil {
		s.log.WithField("kind", job.kind).Debug("email delivery disabled, dropping job")
		return
	}

	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{job.to},
		Subject: job.subject,
		Html:    job.html,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"kind": job.kind,
			"to":   job.to,
		}).WithError(err).Error("failed to send email")
		return
	}

	s.log.WithFields(logrus.Fields{
		"kind": job.kind,
		"to":   job.to,
	}).Info("email sent")
}

func (s *EmailService) enqueue(job emailJob) {
	select {
	case s.jobs <- job:
	default:
		s.log.WithField("kind", job.kind).Warn("email queue full, dropping job")
	}
}

func (s *EmailService) QueueWelcomeEmail(email, name, profileURL string) {
	s.enqueue(emailJob{
		kind:    "welcome",
		to:      email,
		subject: "Welcome to UnLinked",
		html: renderTemplate(welcomeTemplate, map[string]string{
			"Name":       name,
			"ProfileURL": profileURL,
		}),
	})
}

func (s *EmailService) QueueConnectionAcceptedEmail(email, senderName, recipientName, profileURL string) {
	s.enqueue(emailJob{
		kind:    "connection_accepted",
		to:      email,
		subject: fmt.Sprintf("%s accepted your Connection Request", recipientName),
		html: renderTemplate(connectionAcceptedTemplate, map[string]string{
			"SenderName":    senderName,
			"RecipientName": recipientName,
			"ProfileURL":    profileURL,
		}),
	})
}

func (s *EmailService) QueueCommentEmail(email, recipientName, commenterName, postURL, comment string) {
	s.enqueue(emailJob{
		kind:    "comment_notification",
		to:      email,
		subject: "New comment on your post",
		html: renderTemplate(commentTemplate, map[string]string{
			"RecipientName": recipientName,
			"CommenterName": commenterName,
			"PostURL":       postURL,
			"Comment":       comment,
		}),
	})
}
