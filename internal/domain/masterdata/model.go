package masterdata

import "time"

// Department is a clinical unit. Code is the stable business key.
type Department struct {
	ID           int       `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Ward is an inpatient unit with a bed capacity.
type Ward struct {
	ID           int       `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DepartmentColumns returns the department select list under alias. The
// column order matches (*Department).Fields.
func DepartmentColumns(alias string) string {
	return alias + ".id, " + alias + ".code, " + alias + ".name, " +
		alias + ".display_order, " + alias + ".created_at"
}

// Fields returns scan destinations in DepartmentColumns order.
func (d *Department) Fields() []interface{} {
	return []interface{}{&d.ID, &d.Code, &d.Name, &d.DisplayOrder, &d.CreatedAt}
}

// WardColumns returns the ward select list under alias. The column order
// matches (*Ward).Fields.
func WardColumns(alias string) string {
	return alias + ".id, " + alias + ".code, " + alias + ".name, " + alias + ".capacity, " +
		alias + ".display_order, " + alias + ".created_at"
}

// Fields returns scan destinations in WardColumns order.
func (w *Ward) Fields() []interface{} {
	return []interface{}{&w.ID, &w.Code, &w.Name, &w.Capacity, &w.DisplayOrder, &w.CreatedAt}
}
