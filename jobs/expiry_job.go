package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusreserve/booking"
	"campusreserve/database"
	"campusreserve/notifications"
)

// RejectExpiredBookings rejects pending requests whose start time has already
// passed. A request nobody processed before its slot began can never be
// approved, so it is closed out and the requester notified.
func RejectExpiredBookings() {
	log.Println("Running job: RejectExpiredBookings...")

	engine := booking.NewEngine(database.NewBookingStore(database.DB))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := engine.ExpireStale(ctx, time.Now())
	if err != nil {
		log.Printf("Error rejecting expired bookings: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}
	log.Printf("Rejected %d expired pending booking(s)", len(expired))

	for _, b := range expired {
		emailSubject := "Your Booking Request Expired"
		emailBody := fmt.Sprintf(
			"<h1>Booking Expired</h1><p>Your request for <b>%s</b> starting at %s was not processed before the slot began and has been rejected. Please submit a new request.</p>",
			b.Resource.Name,
			b.StartTime.Format("Jan 2 15:04"),
		)
		go notifications.SendEmail(b.User.FullName, b.User.Email, emailSubject, emailBody)
	}
}
