package hrRepository

import (
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/bcrypt"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

type fileDocument struct {
	Employees   []entity.Employee  `json:"employees"`
	CompanyInfo entity.CompanyInfo `json:"company_info"`
}

// fileStore keeps the whole record set in memory and writes it back to a
// single JSON file. One mutex guards every read and write.
type fileStore struct {
	path   string
	log    *logrus.Logger
	bcrypt bcrypt.IBcrypt
	mu     sync.Mutex
	doc    fileDocument
	index  map[string]int
}

// NewFileStore loads path and hashes any plaintext seed passwords in memory.
func NewFileStore(path string, bcryptUtils bcrypt.IBcrypt, log *logrus.Logger) (Repository, error) {
	s := &fileStore{path: path, log: log, bcrypt: bcryptUtils}
	if err := s.load(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"path":      path,
		"employees": len(s.doc.Employees),
	}).Info("Employee file store loaded")

	return s, nil
}

func (s *fileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read employee file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode employee file: %w", err)
	}

	index := make(map[string]int, len(doc.Employees))
	for i, emp := range doc.Employees {
		if _, dup := index[emp.EmployeeID]; dup {
			return fmt.Errorf("duplicate employee id %q in %s", emp.EmployeeID, s.path)
		}
		index[emp.EmployeeID] = i

		if emp.Password == "" || s.bcrypt.IsHashed(emp.Password) {
			continue
		}
		hashed, err := s.bcrypt.HashPassword(emp.Password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", emp.EmployeeID, err)
		}
		doc.Employees[i].Password = hashed
	}

	s.doc = doc
	s.index = index
	return nil
}

func (s *fileStore) save() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".employees-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

func (s *fileStore) NewClient(tx bool) (Client, error) {
	session := &fileSession{store: s, autoSave: !tx}

	return Client{
		Employees: &fileEmployees{session: session},
		Company:   &fileCompany{session: session},
		Commit:    session.commit,
		Rollback:  session.rollback,
	}, nil
}

// fileSession buffers the mutations made through one client. Nothing reaches
// the shared document until flush succeeds.
type fileSession struct {
	store    *fileStore
	autoSave bool
	pending  []pendingChange
	done     bool
}

type pendingChange struct {
	employeeID string
	apply      func(emp *entity.Employee) error
}

// view returns a copy of the stored record with this session's pending
// changes applied. Callers hold s.mu.
func (f *fileSession) view(employeeID string) (entity.Employee, error) {
	s := f.store
	i, ok := s.index[employeeID]
	if !ok {
		return entity.Employee{}, hr.ErrEmployeeNotFound
	}

	emp := cloneEmployee(s.doc.Employees[i])
	for _, change := range f.pending {
		if change.employeeID != employeeID {
			continue
		}
		if err := change.apply(&emp); err != nil {
			return entity.Employee{}, err
		}
	}
	return emp, nil
}

func (f *fileSession) mutate(c context.Context, employeeID string, fn func(emp *entity.Employee) error) error {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := f.view(employeeID)
	if err != nil {
		return err
	}
	if err := fn(&emp); err != nil {
		return err
	}

	f.pending = append(f.pending, pendingChange{employeeID: employeeID, apply: fn})
	if !f.autoSave {
		return nil
	}

	if err := f.flush(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Failed to persist employee file")
		return hr.ErrStoreUnavailable
	}
	return nil
}

// flush replays the pending changes onto the shared document and saves it.
// On any failure the document is left exactly as it was. Callers hold s.mu.
func (f *fileSession) flush() error {
	s := f.store
	changes := f.pending
	f.pending = nil

	updated := make(map[int]entity.Employee, len(changes))
	for _, change := range changes {
		i, ok := s.index[change.employeeID]
		if !ok {
			return hr.ErrEmployeeNotFound
		}
		emp, ok := updated[i]
		if !ok {
			emp = cloneEmployee(s.doc.Employees[i])
		}
		if err := change.apply(&emp); err != nil {
			return err
		}
		updated[i] = emp
	}

	previous := make(map[int]entity.Employee, len(updated))
	for i, emp := range updated {
		previous[i] = s.doc.Employees[i]
		s.doc.Employees[i] = emp
	}

	if err := s.save(); err != nil {
		for i, emp := range previous {
			s.doc.Employees[i] = emp
		}
		return err
	}
	return nil
}

func (f *fileSession) commit() error {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.done {
		return nil
	}
	if len(f.pending) == 0 {
		f.done = true
		return nil
	}

	if err := f.flush(); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to commit employee file")
		return hr.ErrStoreUnavailable
	}
	f.done = true
	return nil
}

func (f *fileSession) rollback() error {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	f.pending = nil
	f.done = true
	return nil
}

type fileEmployees struct {
	session *fileSession
}

func (r *fileEmployees) GetByID(_ context.Context, employeeID string) (entity.Employee, error) {
	s := r.session.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return r.session.view(employeeID)
}

func (r *fileEmployees) UpdatePhone(c context.Context, employeeID string, phone string) error {
	return r.session.mutate(c, employeeID, func(emp *entity.Employee) error {
		emp.Phone = phone
		return nil
	})
}

func (r *fileEmployees) UpdateEmergencyContactPhone(c context.Context, employeeID string, phone string) error {
	return r.session.mutate(c, employeeID, func(emp *entity.Employee) error {
		if emp.EmergencyContact == nil {
			return hr.ErrEmergencyContactNotFound
		}
		emp.EmergencyContact.Phone = phone
		return nil
	})
}

func (r *fileEmployees) AddLeaveRecord(c context.Context, employeeID string, record entity.LeaveRecord) error {
	return r.session.mutate(c, employeeID, func(emp *entity.Employee) error {
		emp.LeaveHistory = append(emp.LeaveHistory, record)
		return nil
	})
}

type fileCompany struct {
	session *fileSession
}

func (r *fileCompany) Get(_ context.Context) (entity.CompanyInfo, error) {
	s := r.session.store
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.doc.CompanyInfo
	if info.Name == "" && info.HREmail == "" && len(info.Holidays) == 0 {
		return entity.CompanyInfo{}, hr.ErrCompanyInfoNotFound
	}
	info.Holidays = append([]string(nil), info.Holidays...)
	return info, nil
}

func cloneEmployee(emp entity.Employee) entity.Employee {
	out := emp
	out.Skills = append([]string(nil), emp.Skills...)
	out.Goals = append([]string(nil), emp.Goals...)
	out.LeaveHistory = append([]entity.LeaveRecord(nil), emp.LeaveHistory...)
	out.Payslips = append([]entity.Payslip(nil), emp.Payslips...)
	if emp.LeaveBalance != nil {
		out.LeaveBalance = make(entity.LeaveBalance, len(emp.LeaveBalance))
		for k, v := range emp.LeaveBalance {
			out.LeaveBalance[k] = v
		}
	}
	if emp.EmergencyContact != nil {
		contact := *emp.EmergencyContact
		out.EmergencyContact = &contact
	}
	return out
}
