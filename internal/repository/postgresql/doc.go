// Package postgresql implements the domain repositories on pgx. Migrations
// are managed outside this service; the expected schema is:
//
//	CREATE TABLE leave_types (
//	    id                    UUID PRIMARY KEY,
//	    name                  TEXT NOT NULL,
//	    default_days_per_year NUMERIC(5,2) NOT NULL,
//	    is_paid               BOOLEAN NOT NULL,
//	    requires_approval     BOOLEAN NOT NULL,
//	    max_consecutive_days  INT,
//	    allow_carry_forward   BOOLEAN NOT NULL,
//	    carry_forward_cap     NUMERIC(5,2),
//	    is_active             BOOLEAN NOT NULL,
//	    created_at            TIMESTAMPTZ NOT NULL,
//	    updated_at            TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE leave_balances (
//	    id                   UUID PRIMARY KEY,
//	    employee_id          UUID NOT NULL REFERENCES employees(id),
//	    leave_type_id        UUID NOT NULL REFERENCES leave_types(id),
//	    year                 INT NOT NULL,
//	    total_days           NUMERIC(5,2) NOT NULL,
//	    used_days            NUMERIC(5,2) NOT NULL,
//	    remaining_days       NUMERIC(5,2) NOT NULL,
//	    carried_forward_days NUMERIC(5,2) NOT NULL,
//	    created_at           TIMESTAMPTZ NOT NULL,
//	    updated_at           TIMESTAMPTZ NOT NULL,
//	    UNIQUE (employee_id, leave_type_id, year)
//	);
//
//	CREATE TABLE leave_requests (
//	    id               UUID PRIMARY KEY,
//	    employee_id      UUID NOT NULL REFERENCES employees(id),
//	    leave_type_id    UUID NOT NULL REFERENCES leave_types(id),
//	    start_date       DATE NOT NULL,
//	    end_date         DATE NOT NULL,
//	    total_days       NUMERIC(5,2) NOT NULL,
//	    reason           TEXT NOT NULL,
//	    status           TEXT NOT NULL, -- 'pending' | 'approved' | 'rejected'
//	    approver_id      UUID,
//	    approved_at      TIMESTAMPTZ,
//	    approver_comment TEXT,
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    updated_at       TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE public_holidays (
//	    id        UUID PRIMARY KEY,
//	    name      TEXT NOT NULL,
//	    date      DATE NOT NULL,
//	    is_active BOOLEAN NOT NULL
//	);
//
//	CREATE TABLE employees (
//	    id                UUID PRIMARY KEY,
//	    full_name         TEXT NOT NULL,
//	    employment_status TEXT NOT NULL,
//	    salary            NUMERIC(12,2) NOT NULL,
//	    hire_date         DATE NOT NULL
//	);
//
//	CREATE TABLE attendance_records (
//	    id          UUID PRIMARY KEY,
//	    employee_id UUID NOT NULL REFERENCES employees(id),
//	    date        DATE NOT NULL,
//	    status      TEXT NOT NULL, -- 'present' | 'absent' | 'on_leave'
//	    UNIQUE (employee_id, date)
//	);
//
//	CREATE TABLE salary_components (
//	    id             UUID PRIMARY KEY,
//	    name           TEXT NOT NULL,
//	    component_type TEXT NOT NULL, -- 'earning' | 'deduction'
//	    is_active      BOOLEAN NOT NULL
//	);
//
//	CREATE TABLE salary_structures (
//	    id           UUID PRIMARY KEY,
//	    employee_id  UUID NOT NULL REFERENCES employees(id),
//	    component_id UUID NOT NULL REFERENCES salary_components(id),
//	    amount       NUMERIC(12,2) NOT NULL,
//	    UNIQUE (employee_id, component_id)
//	);
//
//	CREATE TABLE payroll_runs (
//	    id           UUID PRIMARY KEY,
//	    month        INT NOT NULL,
//	    year         INT NOT NULL,
//	    status       TEXT NOT NULL, -- 'draft' | 'finalized'
//	    processed_at TIMESTAMPTZ NOT NULL,
//	    total_payout NUMERIC(14,2) NOT NULL,
//	    finalized_by UUID,
//	    finalized_at TIMESTAMPTZ,
//	    deleted_at   TIMESTAMPTZ,
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    updated_at   TIMESTAMPTZ NOT NULL
//	);
//	-- One live run per period; the index is the mutual-exclusion point
//	-- for concurrent processing.
//	CREATE UNIQUE INDEX payroll_runs_period_live
//	    ON payroll_runs (month, year) WHERE deleted_at IS NULL;
//
//	CREATE TABLE employee_payrolls (
//	    id               UUID PRIMARY KEY,
//	    payroll_run_id   UUID NOT NULL REFERENCES payroll_runs(id),
//	    employee_id      UUID NOT NULL REFERENCES employees(id),
//	    days_worked      INT NOT NULL,
//	    loss_of_pay_days INT NOT NULL,
//	    basic_salary     NUMERIC(12,2) NOT NULL,
//	    total_earnings   NUMERIC(12,2) NOT NULL,
//	    total_deductions NUMERIC(12,2) NOT NULL,
//	    net_salary       NUMERIC(12,2) NOT NULL,
//	    payment_status   TEXT NOT NULL, -- 'pending' | 'paid'
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    UNIQUE (payroll_run_id, employee_id)
//	);
//
//	CREATE TABLE payroll_details (
//	    id                  UUID PRIMARY KEY,
//	    employee_payroll_id UUID NOT NULL REFERENCES employee_payrolls(id),
//	    component_id        UUID NOT NULL REFERENCES salary_components(id),
//	    amount              NUMERIC(12,2) NOT NULL,
//	    UNIQUE (employee_payroll_id, component_id)
//	);
package postgresql
