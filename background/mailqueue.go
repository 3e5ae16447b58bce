// Package background runs work that must not block the request path.
// Currently that is welcome-email delivery: registration hands a job to the
// queue and returns immediately, with no completion signal and no error
// propagation back to the HTTP response.
package background

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/mail"
)

// WelcomeJob carries what the worker needs to render and send one welcome
// email. The id exists only to correlate log lines.
type WelcomeJob struct {
	ID        uuid.UUID
	UserName  string
	UserEmail string
}

// MailQueue is a buffered job channel drained by a fixed worker pool. It
// satisfies auth.Notifier.
type MailQueue struct {
	jobs      chan WelcomeJob
	mailer    mail.Mailer
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMailQueue starts a queue with the given buffer size and worker count.
func NewMailQueue(mailer mail.Mailer, size, workers int) *MailQueue {
	q := &MailQueue{
		jobs:   make(chan WelcomeJob, size),
		mailer: mailer,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	return q
}

func (q *MailQueue) worker(id int) {
	defer q.wg.Done()
	for job := range q.jobs {
		msg := mail.WelcomeMessage(job.UserName, job.UserEmail)
		if err := q.mailer.Send(msg); err != nil {
			// Swallowed: a failed welcome email never unwinds a registration.
			log.Printf("mail worker %d: job %s: sending to %s failed: %v", id, job.ID, job.UserEmail, err)
			continue
		}
		log.Printf("mail worker %d: job %s: welcome email sent to %s", id, job.ID, job.UserEmail)
	}
	log.Printf("mail worker %d: queue closed, exiting", id)
}

// NotifyWelcome enqueues a welcome email for a new user. The send is
// non-blocking: when the buffer is full the job is dropped with a log line
// rather than stalling the registration request.
func (q *MailQueue) NotifyWelcome(user *auth.User) {
	job := WelcomeJob{
		ID:        uuid.New(),
		UserName:  user.Name,
		UserEmail: user.Email,
	}
	select {
	case q.jobs <- job:
	default:
		log.Printf("mail queue full, dropping welcome email for %s", user.Email)
	}
}

// Stop closes the queue and waits for the workers to drain in-flight jobs.
// Safe to call more than once.
func (q *MailQueue) Stop() {
	q.closeOnce.Do(func() {
		close(q.jobs)
	})
	q.wg.Wait()
}
