package lifecycle

import "job-intake/internal/storage"

const (
	pendingMessage = "Your application is pending. The management is working on your application. " +
		"Please check back later (10 minutes to 24 hours)."
	appliedOnlineMessage = "Your application is successful, our management will message you for the inverview, " +
		"and employment letter will be sent to your email/WhatsApp within 24 hours, " +
		"then you can proceed to 'Task' on your dashboard to start your task."
	appliedMessage = "Your application is successful, Employment letter will be sent to your email/whatsapp within 24 hours, " +
		"then you can proceed to Travel Documents section on your dashboard to prepare your traveling documents."
	declinedMessage = "Your application is declined, kindly reapply for the job or another job, with different email"
)

// OnlineLocation is the company location that routes applicants to tasks
// instead of travel documents.
const OnlineLocation = "Online"

// StatusMessage is the applicant-facing text for an application in status
// at companyLocation. Unknown statuses yield "".
func StatusMessage(status storage.Status, companyLocation string) string {
	switch status {
	case storage.StatusPending:
		return pendingMessage
	case storage.StatusApplied:
		if companyLocation == OnlineLocation {
			return appliedOnlineMessage
		}
		return appliedMessage
	case storage.StatusDeclined:
		return declinedMessage
	}
	return ""
}
