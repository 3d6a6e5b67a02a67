package postgres

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wicaksana/hr-workflow/internal"
	orgDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/org"
	"github.com/wicaksana/hr-workflow/internal/org"
)

func TestOrgRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OrgRepository Suite")
}

type SQLiteEmployee struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;not null"`
	DepartmentID *int64    `gorm:"column:department_id"`
	Role         string    `gorm:"column:role;default:'member'"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteEmployee) TableName() string {
	return "employees"
}

type SQLiteDepartment struct {
	ID              int64     `gorm:"primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	ManagerID       *int64    `gorm:"column:manager_id"`
	DeputyManagerID *int64    `gorm:"column:deputy_manager_id"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (SQLiteDepartment) TableName() string {
	return "departments"
}

var _ = Describe("OrgRepository", func() {
	var (
		db   *gorm.DB
		repo org.TxRepository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEmployee{}, &SQLiteDepartment{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewOrgRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	seedHeadAndDeputy := func() {
		deptID := int64(1)
		headID := int64(10)
		deputyID := int64(11)
		Expect(db.Create(&orgDatamodel.Department{ID: deptID, Name: "Engineering", ManagerID: &headID, DeputyManagerID: &deputyID}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&orgDatamodel.Employee{ID: headID, Name: "Head", Email: "head@mail.com", DepartmentID: &deptID, Role: "head"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&orgDatamodel.Employee{ID: deputyID, Name: "Deputy", Email: "deputy@mail.com", DepartmentID: &deptID, Role: "deputy"}).Error).NotTo(HaveOccurred())
	}

	Describe("GetEmployee", func() {
		It("should load an employee with its role and department", func() {
			seedHeadAndDeputy()

			emp, err := repo.GetEmployee(10)

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.Role).To(Equal(org.RoleHead))
			Expect(*emp.DepartmentID).To(Equal(org.DepartmentID(1)))
		})

		It("should return the sentinel for a missing employee", func() {
			_, err := repo.GetEmployee(999)

			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("GetEmployeeByEmail", func() {
		It("should find the employee", func() {
			seedHeadAndDeputy()

			emp, err := repo.GetEmployeeByEmail("deputy@mail.com")

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.ID).To(Equal(org.EmployeeID(11)))
		})
	})

	Describe("GetDepartment", func() {
		It("should return the sentinel for a missing department", func() {
			_, err := repo.GetDepartment(999)

			Expect(err).To(MatchError(internal.ErrDepartmentNotFound))
		})
	})

	Describe("DepartmentsManagedBy", func() {
		It("should return only departments headed by the employee", func() {
			seedHeadAndDeputy()

			managed, err := repo.DepartmentsManagedBy(10)

			Expect(err).NotTo(HaveOccurred())
			Expect(managed).To(HaveLen(1))
			Expect(managed[0].Name).To(Equal("Engineering"))

			none, err := repo.DepartmentsManagedBy(11)
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})
	})

	Describe("UpdateEmployee", func() {
		It("should persist a role demotion and department move", func() {
			seedHeadAndDeputy()

			emp, err := repo.GetEmployee(10)
			Expect(err).NotTo(HaveOccurred())

			newDept := org.DepartmentID(2)
			Expect(db.Create(&orgDatamodel.Department{ID: 2, Name: "Operations"}).Error).NotTo(HaveOccurred())
			emp.DepartmentID = &newDept
			emp.Demote()

			Expect(repo.UpdateEmployee(emp)).To(Succeed())

			reloaded, err := repo.GetEmployee(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Role).To(Equal(org.RoleMember))
			Expect(*reloaded.DepartmentID).To(Equal(org.DepartmentID(2)))
		})

		It("should write a nil department", func() {
			seedHeadAndDeputy()

			emp, err := repo.GetEmployee(10)
			Expect(err).NotTo(HaveOccurred())
			emp.DepartmentID = nil

			Expect(repo.UpdateEmployee(emp)).To(Succeed())

			reloaded, err := repo.GetEmployee(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.DepartmentID).To(BeNil())
		})
	})

	Describe("UpdateDepartment", func() {
		It("should write nil manager and deputy pointers", func() {
			seedHeadAndDeputy()

			dept, err := repo.GetDepartment(1)
			Expect(err).NotTo(HaveOccurred())
			dept.ManagerID = nil
			dept.DeputyManagerID = nil

			Expect(repo.UpdateDepartment(dept)).To(Succeed())

			reloaded, err := repo.GetDepartment(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.ManagerID).To(BeNil())
			Expect(reloaded.DeputyManagerID).To(BeNil())
			Expect(reloaded.Headless()).To(BeTrue())
		})
	})

	Describe("InTx", func() {
		It("should roll back every write when the function fails", func() {
			seedHeadAndDeputy()

			err := repo.InTx(func(r org.Repository) error {
				dept, err := r.GetDepartment(1)
				if err != nil {
					return err
				}
				dept.ManagerID = nil
				if err := r.UpdateDepartment(dept); err != nil {
					return err
				}
				return errors.New("boom")
			})

			Expect(err).To(HaveOccurred())

			dept, err := repo.GetDepartment(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(dept.ManagerID).NotTo(BeNil())
		})

		It("should commit when the function succeeds", func() {
			seedHeadAndDeputy()

			err := repo.InTx(func(r org.Repository) error {
				dept, err := r.GetDepartment(1)
				if err != nil {
					return err
				}
				dept.ManagerID = nil
				return r.UpdateDepartment(dept)
			})

			Expect(err).NotTo(HaveOccurred())

			dept, err := repo.GetDepartment(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(dept.ManagerID).To(BeNil())
		})
	})

	Describe("EmployeesByDepartment", func() {
		It("should list members ordered by name", func() {
			seedHeadAndDeputy()

			members, err := repo.EmployeesByDepartment(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(2))
			Expect(members[0].Name).To(Equal("Deputy"))
			Expect(members[1].Name).To(Equal("Head"))
		})
	})
})
