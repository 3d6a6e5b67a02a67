package org_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wicaksana/hr-workflow/internal"
	"github.com/wicaksana/hr-workflow/internal/core/events"
	"github.com/wicaksana/hr-workflow/internal/org"
)

func TestOrgService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Org Service Suite")
}

// Mock repository for testing
type mockOrgRepository struct {
	employees   map[org.EmployeeID]*org.Employee
	departments map[org.DepartmentID]*org.Department

	getEmployeeError   error
	getDepartmentError error
	updateError        error
	txError            error
}

func newMockOrgRepository() *mockOrgRepository {
	return &mockOrgRepository{
		employees:   make(map[org.EmployeeID]*org.Employee),
		departments: make(map[org.DepartmentID]*org.Department),
	}
}

func (m *mockOrgRepository) GetEmployee(id org.EmployeeID) (*org.Employee, error) {
	if m.getEmployeeError != nil {
		return nil, m.getEmployeeError
	}
	emp, exists := m.employees[id]
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}
	copy := *emp
	return &copy, nil
}

func (m *mockOrgRepository) GetEmployeeByEmail(email string) (*org.Employee, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			copy := *emp
			return &copy, nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockOrgRepository) GetDepartment(id org.DepartmentID) (*org.Department, error) {
	if m.getDepartmentError != nil {
		return nil, m.getDepartmentError
	}
	dept, exists := m.departments[id]
	if !exists {
		return nil, internal.ErrDepartmentNotFound
	}
	copy := *dept
	return &copy, nil
}

func (m *mockOrgRepository) DepartmentsManagedBy(id org.EmployeeID) ([]*org.Department, error) {
	var managed []*org.Department
	for _, dept := range m.departments {
		if dept.ManagerID != nil && *dept.ManagerID == id {
			copy := *dept
			managed = append(managed, &copy)
		}
	}
	return managed, nil
}

func (m *mockOrgRepository) EmployeesByDepartment(id org.DepartmentID) ([]*org.Employee, error) {
	var members []*org.Employee
	for _, emp := range m.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == id {
			copy := *emp
			members = append(members, &copy)
		}
	}
	return members, nil
}

func (m *mockOrgRepository) UpdateEmployee(e *org.Employee) error {
	if m.updateError != nil {
		return m.updateError
	}
	copy := *e
	m.employees[e.ID] = &copy
	return nil
}

func (m *mockOrgRepository) UpdateDepartment(d *org.Department) error {
	if m.updateError != nil {
		return m.updateError
	}
	copy := *d
	m.departments[d.ID] = &copy
	return nil
}

func (m *mockOrgRepository) InTx(fn func(org.Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(m)
}

// Mock publisher capturing published events
type mockPublisher struct {
	events []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) typesSeen() []string {
	var types []string
	for _, e := range m.events {
		types = append(types, e.EventType())
	}
	return types
}

var _ = Describe("OrgService", func() {
	var (
		orgService *org.Service
		mockRepo   *mockOrgRepository
		publisher  *mockPublisher
		logger     *slog.Logger
		ctx        context.Context
	)

	deptID := func(id int64) *org.DepartmentID {
		d := org.DepartmentID(id)
		return &d
	}
	empID := func(id int64) *org.EmployeeID {
		e := org.EmployeeID(id)
		return &e
	}

	BeforeEach(func() {
		mockRepo = newMockOrgRepository()
		publisher = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		orgService = org.NewService(mockRepo, publisher, logger)
		ctx = context.Background()
	})

	seedDepartmentWithHeadAndDeputy := func() {
		mockRepo.departments[1] = &org.Department{ID: 1, Name: "Engineering", ManagerID: empID(10), DeputyManagerID: empID(11)}
		mockRepo.departments[2] = &org.Department{ID: 2, Name: "Operations"}
		mockRepo.employees[10] = &org.Employee{ID: 10, Name: "Head", Email: "head@mail.com", DepartmentID: deptID(1), Role: org.RoleHead}
		mockRepo.employees[11] = &org.Employee{ID: 11, Name: "Deputy", Email: "deputy@mail.com", DepartmentID: deptID(1), Role: org.RoleDeputy}
		mockRepo.employees[12] = &org.Employee{ID: 12, Name: "Member", Email: "member@mail.com", DepartmentID: deptID(1), Role: org.RoleMember}
	}

	Describe("ResolveDeparture", func() {
		Context("when the departing employee heads a department with a deputy", func() {
			It("should promote the deputy and demote the departing head", func() {
				seedDepartmentWithHeadAndDeputy()

				departure, err := orgService.ResolveDeparture(ctx, 10)

				Expect(err).ToNot(HaveOccurred())
				Expect(departure.WasHead).To(BeTrue())
				Expect(departure.Action).To(Equal(org.ActionPromotedDeputy))
				Expect(*departure.PromotedDeputyID).To(Equal(org.EmployeeID(11)))

				dept := mockRepo.departments[1]
				Expect(*dept.ManagerID).To(Equal(org.EmployeeID(11)))
				Expect(dept.DeputyManagerID).To(BeNil())

				Expect(mockRepo.employees[11].Role).To(Equal(org.RoleHead))
				Expect(mockRepo.employees[10].Role).To(Equal(org.RoleMember))
			})

			It("should publish a deputy promoted event", func() {
				seedDepartmentWithHeadAndDeputy()

				_, err := orgService.ResolveDeparture(ctx, 10)

				Expect(err).ToNot(HaveOccurred())
				Expect(publisher.typesSeen()).To(ContainElement(events.EventDeputyPromoted))
			})
		})

		Context("when the departing head has no deputy", func() {
			It("should leave the department headless without an error", func() {
				mockRepo.departments[1] = &org.Department{ID: 1, Name: "Engineering", ManagerID: empID(10)}
				mockRepo.employees[10] = &org.Employee{ID: 10, Name: "Head", Email: "head@mail.com", DepartmentID: deptID(1), Role: org.RoleHead}

				departure, err := orgService.ResolveDeparture(ctx, 10)

				Expect(err).ToNot(HaveOccurred())
				Expect(departure.WasHead).To(BeTrue())
				Expect(departure.Action).To(Equal(org.ActionClearedHead))

				dept := mockRepo.departments[1]
				Expect(dept.ManagerID).To(BeNil())
				Expect(dept.Headless()).To(BeTrue())
				Expect(mockRepo.employees[10].Role).To(Equal(org.RoleMember))
			})

			It("should publish a department headless event", func() {
				mockRepo.departments[1] = &org.Department{ID: 1, Name: "Engineering", ManagerID: empID(10)}
				mockRepo.employees[10] = &org.Employee{ID: 10, Name: "Head", Email: "head@mail.com", DepartmentID: deptID(1), Role: org.RoleHead}

				_, err := orgService.ResolveDeparture(ctx, 10)

				Expect(err).ToNot(HaveOccurred())
				Expect(publisher.typesSeen()).To(ContainElement(events.EventDepartmentHeadless))
			})
		})

		Context("when the departing employee heads nothing", func() {
			It("should return action none and change nothing", func() {
				seedDepartmentWithHeadAndDeputy()

				departure, err := orgService.ResolveDeparture(ctx, 12)

				Expect(err).ToNot(HaveOccurred())
				Expect(departure.WasHead).To(BeFalse())
				Expect(departure.Action).To(Equal(org.ActionNone))
				Expect(*mockRepo.departments[1].ManagerID).To(Equal(org.EmployeeID(10)))
				Expect(publisher.events).To(BeEmpty())
			})
		})

		Context("when the departing employee is a deputy", func() {
			It("should clear the department's deputy pointer", func() {
				seedDepartmentWithHeadAndDeputy()

				departure, err := orgService.ResolveDeparture(ctx, 11)

				Expect(err).ToNot(HaveOccurred())
				Expect(departure.Action).To(Equal(org.ActionNone))
				Expect(mockRepo.departments[1].DeputyManagerID).To(BeNil())
				Expect(*mockRepo.departments[1].ManagerID).To(Equal(org.EmployeeID(10)))
			})
		})

		Context("when the employee heads more than one department", func() {
			It("should refuse with a conflict error", func() {
				mockRepo.departments[1] = &org.Department{ID: 1, Name: "Engineering", ManagerID: empID(10)}
				mockRepo.departments[2] = &org.Department{ID: 2, Name: "Operations", ManagerID: empID(10)}
				mockRepo.employees[10] = &org.Employee{ID: 10, Name: "Head", Email: "head@mail.com", DepartmentID: deptID(1), Role: org.RoleHead}

				_, err := orgService.ResolveDeparture(ctx, 10)

				Expect(err).To(MatchError(internal.ErrHeadshipConflict))
			})
		})

		Context("when the employee does not exist", func() {
			It("should return employee not found", func() {
				_, err := orgService.ResolveDeparture(ctx, 999)

				Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
			})
		})
	})

	Describe("Transfer", func() {
		Context("when transferring a department head with a deputy", func() {
			It("should run succession and land the employee as a member of the destination", func() {
				seedDepartmentWithHeadAndDeputy()

				result, err := orgService.Transfer(ctx, 10, 2)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.EmployeeID).To(Equal(org.EmployeeID(10)))
				Expect(result.DepartmentID).To(Equal(org.DepartmentID(2)))
				Expect(result.Succession.Action).To(Equal(org.ActionPromotedDeputy))
				Expect(result.Warning).To(BeEmpty())

				moved := mockRepo.employees[10]
				Expect(*moved.DepartmentID).To(Equal(org.DepartmentID(2)))
				Expect(moved.Role).To(Equal(org.RoleMember))

				Expect(*mockRepo.departments[1].ManagerID).To(Equal(org.EmployeeID(11)))
			})

			It("should publish transfer and promotion events", func() {
				seedDepartmentWithHeadAndDeputy()

				_, err := orgService.Transfer(ctx, 10, 2)

				Expect(err).ToNot(HaveOccurred())
				Expect(publisher.typesSeen()).To(ContainElements(
					events.EventDeputyPromoted,
					events.EventEmployeeTransferred,
				))
			})
		})

		Context("when transferring a head with no deputy", func() {
			It("should complete with a headless warning and no head anywhere for the old department", func() {
				mockRepo.departments[1] = &org.Department{ID: 1, Name: "Engineering", ManagerID: empID(10)}
				mockRepo.departments[2] = &org.Department{ID: 2, Name: "Operations"}
				mockRepo.employees[10] = &org.Employee{ID: 10, Name: "Head", Email: "head@mail.com", DepartmentID: deptID(1), Role: org.RoleHead}

				result, err := orgService.Transfer(ctx, 10, 2)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Succession.Action).To(Equal(org.ActionClearedHead))
				Expect(result.Warning).ToNot(BeEmpty())

				Expect(mockRepo.departments[1].ManagerID).To(BeNil())
				Expect(*mockRepo.employees[10].DepartmentID).To(Equal(org.DepartmentID(2)))
				Expect(mockRepo.employees[10].Role).To(Equal(org.RoleMember))

				for _, emp := range mockRepo.employees {
					Expect(emp.Role).ToNot(Equal(org.RoleHead))
				}
			})
		})

		Context("when transferring a plain member", func() {
			It("should move them without touching any headship", func() {
				seedDepartmentWithHeadAndDeputy()

				result, err := orgService.Transfer(ctx, 12, 2)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Succession.Action).To(Equal(org.ActionNone))
				Expect(*mockRepo.employees[12].DepartmentID).To(Equal(org.DepartmentID(2)))
				Expect(*mockRepo.departments[1].ManagerID).To(Equal(org.EmployeeID(10)))
				Expect(*mockRepo.departments[1].DeputyManagerID).To(Equal(org.EmployeeID(11)))
			})
		})

		Context("when transferring into the current department", func() {
			It("should be a permitted no-op move that still runs succession", func() {
				seedDepartmentWithHeadAndDeputy()

				result, err := orgService.Transfer(ctx, 10, 1)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Succession.Action).To(Equal(org.ActionPromotedDeputy))
				Expect(*mockRepo.employees[10].DepartmentID).To(Equal(org.DepartmentID(1)))
				Expect(mockRepo.employees[10].Role).To(Equal(org.RoleMember))
			})
		})

		Context("when the destination department does not exist", func() {
			It("should fail without changing the source department", func() {
				seedDepartmentWithHeadAndDeputy()

				_, err := orgService.Transfer(ctx, 10, 99)

				Expect(err).To(MatchError(internal.ErrDepartmentNotFound))
				Expect(*mockRepo.departments[1].ManagerID).To(Equal(org.EmployeeID(10)))
				Expect(mockRepo.employees[10].Role).To(Equal(org.RoleHead))
			})
		})

		Context("when the transaction fails", func() {
			It("should surface the error", func() {
				seedDepartmentWithHeadAndDeputy()
				mockRepo.txError = errors.New("deadlock")

				_, err := orgService.Transfer(ctx, 10, 2)

				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ListDepartmentMembers", func() {
		It("should fail for a missing department", func() {
			_, err := orgService.ListDepartmentMembers(42)

			Expect(err).To(MatchError(internal.ErrDepartmentNotFound))
		})

		It("should return only members of the department", func() {
			seedDepartmentWithHeadAndDeputy()

			members, err := orgService.ListDepartmentMembers(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(members).To(HaveLen(3))
		})
	})
})
