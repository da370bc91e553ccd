// Package dict implements the register dictionary store.
//
// A dictionary is loaded once from an XML register-description document and
// is immutable afterwards, so it can be shared across goroutines without
// locking. Loading is transactional: any structural error (missing required
// attribute, unknown data type or access mode, duplicate identifier at any
// scope) fails the whole load and no partially populated dictionary is ever
// returned.
//
// # Document Format
//
// The root element is ServolinkDictionary. Categories and registers live in
// separate sections:
//
//	<ServolinkDictionary>
//	  <Categories>
//	    <Category id="MOTION">
//	      <Labels><Label lang="en">Motion</Label></Labels>
//	      <Subcategories>
//	        <Subcategory id="PID"><Labels>...</Labels></Subcategory>
//	      </Subcategories>
//	    </Category>
//	  </Categories>
//	  <Registers>
//	    <Register id="VEL_TGT" address="2041" dtype="s32" access="rw"
//	              phy="vel" cat_id="MOTION">
//	      <Range min="-2000000" max="2000000"/>
//	      <Labels><Label lang="en">Velocity target</Label></Labels>
//	    </Register>
//	  </Registers>
//	</ServolinkDictionary>
//
// Addresses are hexadecimal. Unknown phy names silently map to "none"; a
// scat_id without a cat_id is a load error.
package dict
