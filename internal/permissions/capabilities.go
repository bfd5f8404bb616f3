package permissions

// Module and action identifiers, canonical form. The catalog rows seeded in
// db/migrations use exactly these strings.
const (
	ModuleUsers     = "usuarios"
	ModuleClients   = "clientes"
	ModuleProjects  = "proyectos"
	ModuleInventory = "inventario"
	ModuleSuppliers = "proveedores"
	ModuleWorkshops = "talleres"

	ActionView         = "ver"
	ActionCreate       = "crear"
	ActionEdit         = "editar"
	ActionDelete       = "eliminar"
	ActionCompleteArea = "completar_area"
	ActionAdjustStock  = "ajustar_stock"
)

var (
	CapUsersView = Capability{ModuleUsers, ActionView}
	CapUsersEdit = Capability{ModuleUsers, ActionEdit}

	CapClientsView   = Capability{ModuleClients, ActionView}
	CapClientsCreate = Capability{ModuleClients, ActionCreate}
	CapClientsEdit   = Capability{ModuleClients, ActionEdit}
	CapClientsDelete = Capability{ModuleClients, ActionDelete}

	CapProjectsView   = Capability{ModuleProjects, ActionView}
	CapProjectsCreate = Capability{ModuleProjects, ActionCreate}
	CapProjectsEdit   = Capability{ModuleProjects, ActionEdit}
	CapProjectsDelete = Capability{ModuleProjects, ActionDelete}
	// Area-scoped: operators additionally need the stage's area assigned.
	CapProjectsCompleteArea = Capability{ModuleProjects, ActionCompleteArea}

	CapInventoryView        = Capability{ModuleInventory, ActionView}
	CapInventoryCreate      = Capability{ModuleInventory, ActionCreate}
	CapInventoryEdit        = Capability{ModuleInventory, ActionEdit}
	CapInventoryDelete      = Capability{ModuleInventory, ActionDelete}
	CapInventoryAdjustStock = Capability{ModuleInventory, ActionAdjustStock}

	CapSuppliersView   = Capability{ModuleSuppliers, ActionView}
	CapSuppliersCreate = Capability{ModuleSuppliers, ActionCreate}
	CapSuppliersEdit   = Capability{ModuleSuppliers, ActionEdit}
	CapSuppliersDelete = Capability{ModuleSuppliers, ActionDelete}

	CapWorkshopsView   = Capability{ModuleWorkshops, ActionView}
	CapWorkshopsCreate = Capability{ModuleWorkshops, ActionCreate}
	CapWorkshopsEdit   = Capability{ModuleWorkshops, ActionEdit}
	CapWorkshopsDelete = Capability{ModuleWorkshops, ActionDelete}
)
