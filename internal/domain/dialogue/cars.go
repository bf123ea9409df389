package dialogue

import (
	"context"
	"fmt"
	"time"

	"hr-server/chatbot-api/internal/domain/hr"
	"hr-server/chatbot-api/internal/domain/receipt"
)

// assignCarIntent assigns a fleet car to the session's employee.
type assignCarIntent struct {
	CarID    *string    `json:"carId,omitempty"`
	CarLabel string     `json:"carLabel,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

func (p *assignCarIntent) Tag() IntentTag { return IntentAssignCar }

func (p *assignCarIntent) prompt() string {
	if p.CarID == nil {
		return "Which car? Use the car ID, name, or plate."
	}
	return "From what date?"
}

func (p *assignCarIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	switch {
	case p.CarID == nil:
		car, ok, err := e.matchCar(ctx, text)
		if err != nil {
			return err
		}
		if !ok {
			s.AddBot(msgUnknownCar)
			return nil
		}
		p.CarID = &car.ID
		p.CarLabel = carLabel(car)
		s.AddBot(p.prompt())
	case p.Date == nil:
		date, err := e.resolveDate(s, text)
		if err != nil {
			s.AddBot(msgInvalidDate)
			return nil
		}
		p.Date = &date
		s.ClearPending()
		return p.execute(ctx, e, s)
	}
	return nil
}

func (p *assignCarIntent) execute(ctx context.Context, e *Engine, s *Session) error {
	assignment := hr.CarAssignment{
		CarID:      *p.CarID,
		EmployeeID: s.EmployeeID,
		Status:     hr.AssignmentActive,
		AssignedAt: *p.Date,
	}
	if _, err := e.hr.CreateCarAssignment(ctx, assignment); err != nil {
		return err
	}

	e.uploadReceipt(ctx, s, "assignCar", []receipt.Line{
		{LabelKey: "label.car", Value: p.CarLabel},
		{LabelKey: "label.date", Value: p.Date.Format("2006-01-02")},
	})
	s.AddBot(fmt.Sprintf("Assigned %s from %s.", p.CarLabel, p.Date.Format("2006-01-02")))
	return nil
}

// returnCarIntent closes the active assignment for one car.
type returnCarIntent struct {
	CarID    *string `json:"carId,omitempty"`
	CarLabel string  `json:"carLabel,omitempty"`
}

func (p *returnCarIntent) Tag() IntentTag { return IntentReturnCar }

func (p *returnCarIntent) prompt() string {
	return "Which car is being returned? Use the car ID, name, or plate."
}

func (p *returnCarIntent) step(ctx context.Context, e *Engine, s *Session, text string) error {
	car, ok, err := e.matchCar(ctx, text)
	if err != nil {
		return err
	}
	if !ok {
		s.AddBot(msgUnknownCar)
		return nil
	}
	p.CarID = &car.ID
	p.CarLabel = carLabel(car)
	s.ClearPending()

	assignments, err := e.hr.CarAssignments(ctx, s.EmployeeID)
	if err != nil {
		return err
	}
	active, found := hr.ActiveCarAssignment(assignments, car.ID)
	if !found {
		s.AddBot(e.text(s, "noActiveAssignment"))
		return nil
	}

	if err := e.hr.ReturnCarAssignment(ctx, active.ID); err != nil {
		return err
	}

	e.uploadReceipt(ctx, s, "returnCar", []receipt.Line{
		{LabelKey: "label.car", Value: p.CarLabel},
	})
	s.AddBot(fmt.Sprintf("%s returned.", p.CarLabel))
	return nil
}

func carLabel(car hr.Car) string {
	if car.Plate != "" {
		return fmt.Sprintf("%s (%s)", car.Name, car.Plate)
	}
	return car.Name
}
