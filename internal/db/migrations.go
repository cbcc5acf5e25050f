package db

// Migrations is the ordered list of schema changes. Mirroring the document
// origin of this data, tables carry no foreign keys: a shift template can be
// deleted independently of historical mappings, and mappings denormalize the
// staff display name.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_staff",
		SQL: `
			CREATE TABLE staff (
				id            uuid PRIMARY KEY,
				name          text NOT NULL,
				email         text NOT NULL UNIQUE,
				role          text NOT NULL,
				password_hash text NOT NULL,
				is_active     boolean NOT NULL DEFAULT true,
				created_at    timestamptz NOT NULL DEFAULT now(),
				updated_at    timestamptz NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 2,
		Name:    "create_shift_templates",
		SQL: `
			CREATE TABLE shift_templates (
				id         uuid PRIMARY KEY,
				name       text NOT NULL UNIQUE,
				start_time text NOT NULL,
				end_time   text NOT NULL,
				is_active  boolean NOT NULL DEFAULT true,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 3,
		Name:    "create_staff_shift_mappings",
		SQL: `
			CREATE TABLE staff_shift_mappings (
				id                uuid PRIMARY KEY,
				staff_id          uuid NOT NULL,
				staff_name        text NOT NULL,
				role              text NOT NULL,
				shift_template_id uuid NOT NULL,
				effective_from    timestamptz NOT NULL,
				effective_to      timestamptz,
				is_active         boolean NOT NULL DEFAULT true,
				created_at        timestamptz NOT NULL DEFAULT now(),
				updated_at        timestamptz NOT NULL DEFAULT now()
			);
			CREATE INDEX staff_shift_mappings_staff_idx
				ON staff_shift_mappings (staff_id, effective_from);
			CREATE INDEX staff_shift_mappings_template_idx
				ON staff_shift_mappings (shift_template_id, is_active)`,
	},
	{
		Version: 4,
		Name:    "create_tasks",
		SQL: `
			CREATE TABLE tasks (
				id               uuid PRIMARY KEY,
				task_type        text NOT NULL,
				description      text NOT NULL,
				assigned_to      uuid,
				staff_name       text NOT NULL,
				role             text NOT NULL,
				status           text NOT NULL,
				related_visit_id uuid,
				created_at       timestamptz NOT NULL DEFAULT now(),
				updated_at       timestamptz NOT NULL DEFAULT now()
			);
			CREATE INDEX tasks_assignee_idx ON tasks (assigned_to, status);
			CREATE INDEX tasks_created_idx ON tasks (created_at DESC)`,
	},
}
